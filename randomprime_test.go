// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randomprime

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPrimeInRange(t *testing.T) {
	p, err := RandomPrimeInRange(rand.Reader, 597, 120)
	require.NoError(t, err)
	assert.True(t, p.ProbablyPrime(22), "p not prime!")
}

func TestRandomPrime(t *testing.T) {
	p, err := RandomPrime(rand.Reader, 1024)
	require.NoError(t, err)
	assert.True(t, p.ProbablyPrime(22), "p not prime!")
	assert.LessOrEqual(t, p.BitLen(), 1025)
}

func TestRandomPrimeFixedCandidate(t *testing.T) {
	p, err := RandomPrime(bytes.NewReader([]byte{14}), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(17), p.Int64())

	p, err = RandomPrime(bytes.NewReader([]byte{10}), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(11), p.Int64())
}
