// Package randomprime generates random probable primes of a given size.
package randomprime

import (
	"io"

	"github.com/privacybydesign/randomprime/big"
	"github.com/privacybydesign/randomprime/internal/common"
)

// DefaultBits is the bit length used by the randomprime command when none is given.
const DefaultBits = common.DefaultBits

// RandomPrime returns the smallest probable prime not below a random
// bits-bit integer read from rand.
func RandomPrime(rand io.Reader, bits int) (*big.Int, error) {
	return common.NewGenerator(common.NewArithmetic(rand)).Generate(bits)
}

func RandomPrimeInRange(rand io.Reader, start, length uint) (p *big.Int, err error) {
	return common.RandomPrimeInRange(rand, start, length)
}
