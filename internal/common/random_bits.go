package common

import (
	"io"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/randomprime/big"
)

// RandomBits reads a uniformly random integer in [0, 2^bits) from rand.
// The top bit is not forced, so the result may be shorter than bits.
// A non-positive bits yields zero without touching rand.
func RandomBits(rand io.Reader, bits int) (*big.Int, error) {
	if bits <= 0 {
		return new(big.Int), nil
	}

	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, errors.WrapPrefix(err, "randomBits: read random source", 0)
	}

	// Clear the bits of the leading byte that fall outside the requested size
	if excess := uint(len(buf)*8 - bits); excess > 0 {
		buf[0] &= byte(0xff >> excess)
	}

	return new(big.Int).SetBytes(buf), nil
}
