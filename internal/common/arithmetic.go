package common

import (
	"io"
	"sync"

	"github.com/privacybydesign/randomprime/big"
)

// Arithmetic is the set of big-integer capabilities the prime generator
// depends on. Any arbitrary-precision backend can be put behind it.
type Arithmetic interface {
	// RandomBits returns a uniformly random integer in [0, 2^bits).
	RandomBits(bits int) (*big.Int, error)
	// NextProbablePrime returns the smallest probable prime >= x.
	NextProbablePrime(x *big.Int) *big.Int
	// DecimalString returns the base-10 representation of x.
	DecimalString(x *big.Int) string
}

type stdArithmetic struct {
	mu   sync.Mutex // guards rand, which need not be safe for concurrent use
	rand io.Reader
}

// NewArithmetic returns an Arithmetic backed by math/big that draws its
// randomness from rand.
func NewArithmetic(rand io.Reader) Arithmetic {
	return &stdArithmetic{rand: rand}
}

func (a *stdArithmetic) RandomBits(bits int) (*big.Int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return RandomBits(a.rand, bits)
}

func (a *stdArithmetic) NextProbablePrime(x *big.Int) *big.Int {
	return NextProbablePrime(x)
}

func (a *stdArithmetic) DecimalString(x *big.Int) string {
	return x.Text(10)
}
