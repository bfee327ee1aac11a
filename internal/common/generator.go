package common

import (
	"fmt"
	"io"

	"github.com/privacybydesign/randomprime/big"
)

// DefaultBits is the bit length used when none is given.
const DefaultBits = 16384

// Generator produces probable primes from a random candidate of a given size.
type Generator struct {
	arith Arithmetic
}

func NewGenerator(arith Arithmetic) *Generator {
	return &Generator{arith: arith}
}

// Arithmetic returns the backend the generator was built with.
func (g *Generator) Arithmetic() Arithmetic {
	return g.arith
}

// Generate draws a random bits-bit integer and advances it to the next
// probable prime. The result is never smaller than the drawn candidate.
func (g *Generator) Generate(bits int) (*big.Int, error) {
	candidate, err := g.arith.RandomBits(bits)
	if err != nil {
		return nil, err
	}
	return g.arith.NextProbablePrime(candidate), nil
}

// Write generates a prime and writes its decimal digits to w, newline-terminated.
func (g *Generator) Write(w io.Writer, bits int) error {
	p, err := g.Generate(bits)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, g.arith.DecimalString(p))
	return err
}
