// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"io"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/randomprime/big"
)

// maxRangeAttempts bounds the number of candidates RandomPrimeInRange draws
// before giving up on a range that is too narrow to hold a prime.
const maxRangeAttempts = 1 << 10

// RandomPrimeInRange returns a random probable prime p with
// 2^start <= p < 2^start + 2^length.
func RandomPrimeInRange(rand io.Reader, start, length uint) (p *big.Int, err error) {
	if start < 2 {
		err = errors.New("randomPrimeInRange: prime size must be at least 2-bit")
		return
	}
	if length > start {
		err = errors.New("randomPrimeInRange: length must not exceed start")
		return
	}

	offset := new(big.Int).Lsh(bigOne, start)
	limit := new(big.Int).Lsh(bigOne, length)
	limit.Add(limit, offset)

	for i := 0; i < maxRangeAttempts; i++ {
		var r *big.Int
		if r, err = RandomBits(rand, int(length)); err != nil {
			return nil, err
		}
		p = NextProbablePrime(r.Add(r, offset))
		if p.Cmp(limit) < 0 {
			return p, nil
		}
	}
	return nil, errors.Errorf("randomPrimeInRange: no prime found in [2^%d, 2^%d+2^%d)", start, start, length)
}
