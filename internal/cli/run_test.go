package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/randomprime/big"
	"github.com/privacybydesign/randomprime/internal/common"
	"github.com/privacybydesign/randomprime/pool"
)

func testLogger() *logrus.Logger {
	log, _ := logtest.NewNullLogger()
	return log
}

func lines(t *testing.T, out string) []*big.Int {
	t.Helper()
	require.True(t, strings.HasSuffix(out, "\n"), "output %q is not newline-terminated", out)

	var primes []*big.Int
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		p, ok := new(big.Int).SetString(line, 10)
		require.True(t, ok, "line %q is not decimal", line)
		primes = append(primes, p)
	}
	return primes
}

func TestRunSingleLine(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Bits: 128, Source: "seed", Seed: 99, Count: 1}
	require.NoError(t, Run(context.Background(), cfg, &out, testLogger()))

	primes := lines(t, out.String())
	require.Len(t, primes, 1)
	assert.True(t, primes[0].ProbablyPrime(32))
}

func TestRunDeterministicSeed(t *testing.T) {
	cfg := Config{Bits: 200, Source: "seed", Seed: 2024, Count: 1}

	var a, b bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, &a, testLogger()))
	require.NoError(t, Run(context.Background(), cfg, &b, testLogger()))
	assert.Equal(t, a.String(), b.String())

	// Same value as the generator produces directly from the same seed
	gen := common.NewGenerator(common.NewArithmetic(common.NewSeededSource(2024)))
	var direct bytes.Buffer
	require.NoError(t, gen.Write(&direct, 200))
	assert.Equal(t, direct.String(), a.String())
}

func TestRunSeededCountIsReproducible(t *testing.T) {
	cfg := Config{Bits: 256, Source: "seed", Seed: 7, Count: 4}

	var first bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, &first, testLogger()))
	require.Len(t, lines(t, first.String()), 4)

	for i := 0; i < 4; i++ {
		var again bytes.Buffer
		require.NoError(t, Run(context.Background(), cfg, &again, testLogger()))
		assert.Equal(t, first.String(), again.String(), "run %d", i)
	}

	// Same sequence as drawing four primes in a row from the seed
	gen := common.NewGenerator(common.NewArithmetic(common.NewSeededSource(7)))
	var direct bytes.Buffer
	for i := 0; i < 4; i++ {
		require.NoError(t, gen.Write(&direct, 256))
	}
	assert.Equal(t, direct.String(), first.String())
}

func TestRunCountQuietAtDefaultLevel(t *testing.T) {
	var logs bytes.Buffer
	log, err := NewLogger("warn", &logs)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), Config{Bits: 64, Source: "crypto", Count: 3}, &out, log))
	assert.Len(t, lines(t, out.String()), 3)
	assert.Empty(t, logs.String())
}

func TestRunNonPositiveBits(t *testing.T) {
	for _, bits := range []int{0, -7} {
		var out bytes.Buffer
		cfg := Config{Bits: bits, Source: "time", Count: 1}
		require.NoError(t, Run(context.Background(), cfg, &out, testLogger()))
		assert.Equal(t, "2\n", out.String())
	}
}

func TestRunCount(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Bits: 64, Source: "crypto", Count: 5}
	require.NoError(t, Run(context.Background(), cfg, &out, testLogger()))

	primes := lines(t, out.String())
	require.Len(t, primes, 5)
	for _, p := range primes {
		assert.True(t, p.ProbablyPrime(32))
	}
}

func TestRunFillThenFetch(t *testing.T) {
	store := filepath.Join(t.TempDir(), "primes.db")

	var out bytes.Buffer
	fill := Config{Bits: 96, Source: "seed", Seed: 5, Count: 1, Fill: 2, Store: store}
	require.NoError(t, Run(context.Background(), fill, &out, testLogger()))
	assert.Empty(t, out.String())

	bolt, err := pool.OpenBoltPool(store, testLogger())
	require.NoError(t, err)
	n, err := bolt.Count(96)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, bolt.Close())

	// Two stored primes, then one generated after the store runs dry
	fetch := Config{Bits: 96, Source: "crypto", Count: 3, Store: store}
	require.NoError(t, Run(context.Background(), fetch, &out, testLogger()))
	primes := lines(t, out.String())
	require.Len(t, primes, 3)
	for _, p := range primes {
		assert.True(t, p.ProbablyPrime(32))
	}
}

func TestRunErrors(t *testing.T) {
	log := testLogger()

	assert.Error(t, Run(context.Background(), Config{Bits: 8, Count: 1}, nil, log))
	assert.Error(t, Run(context.Background(), Config{Bits: 8, Count: 1, Source: "dice"}, &bytes.Buffer{}, log))
	assert.Error(t, Run(context.Background(), Config{Bits: 8, Count: 1, Fill: 1}, &bytes.Buffer{}, log))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	assert.ErrorIs(t, Run(ctx, Config{Bits: 8, Count: 1, Source: "crypto"}, &out, log), context.Canceled)
	assert.Empty(t, out.String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("info", &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.WithField("bits", 8).Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "bits=8")

	_, err = NewLogger("loud", &buf)
	assert.Error(t, err)
}

func TestConfigLoggerFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := ConfigLogger(Config{LogLevel: "loud", Warnings: []string{"parse env: bad value"}}, &buf)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "ignoring log level")
	assert.Contains(t, buf.String(), "parse env: bad value")
}
