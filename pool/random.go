package pool

import (
	"encoding/json"
	"io"

	"github.com/privacybydesign/randomprime/big"
	"github.com/privacybydesign/randomprime/internal/common"
)

type randomPool struct {
	gen *common.Generator
}

func (p *randomPool) StatsJSON() ([]byte, error) {
	type Stats struct {
		Name string
	}
	return json.Marshal(Stats{
		Name: "random",
	})
}

// NewRandomPool returns a pool that generates a new prime on every fetch.
func NewRandomPool(r io.Reader) PrimePool {
	return &randomPool{
		gen: common.NewGenerator(common.NewArithmetic(r)),
	}
}

func (p *randomPool) Fetch(bits int) (*big.Int, error) {
	return p.gen.Generate(bits)
}
