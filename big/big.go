// Package big provides the arbitrary-precision integer type used by randomprime.
package big

import "math/big"

type Int = big.Int

func NewInt(x int64) *Int {
	return big.NewInt(x)
}
