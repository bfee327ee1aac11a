package pool

import (
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/randomprime/big"
	"github.com/privacybydesign/randomprime/internal/common"
)

type PrimePool interface {
	Fetch(bits int) (*big.Int, error)
}

// Stats is implemented by pools that can describe themselves.
type Stats interface {
	StatsJSON() ([]byte, error)
}

// RandomPrimeFromPool returns a prime of the given size from pool, generating
// a fresh one with gen when the pool is nil, empty or failing.
func RandomPrimeFromPool(pool PrimePool, gen *common.Generator, bits int, log logrus.FieldLogger) (*big.Int, error) {
	if pool != nil {
		p, err := pool.Fetch(bits)
		if err == nil {
			return p, nil
		}
		log.WithError(err).WithField("bits", bits).Debug("pool fetch failed, generating")
	}

	return gen.Generate(bits)
}
