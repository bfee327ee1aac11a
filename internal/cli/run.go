package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/randomprime/internal/common"
	"github.com/privacybydesign/randomprime/pool"
)

// Run generates cfg.Count primes and writes each on its own line to out, or
// precalculates cfg.Fill primes into cfg.Store.
func Run(ctx context.Context, cfg Config, out io.Writer, log *logrus.Logger) error {
	if out == nil {
		return errors.New("output is required")
	}

	src, err := common.NewSource(common.SourceKind(cfg.Source), cfg.Seed, time.Now())
	if err != nil {
		return err
	}
	gen := common.NewGenerator(common.NewArithmetic(src))

	if cfg.Fill > 0 && cfg.Store == "" {
		return errors.New("fill requires a store")
	}

	var primes pool.PrimePool
	switch {
	case cfg.Store != "":
		store, err := pool.OpenBoltPool(cfg.Store, log)
		if err != nil {
			return err
		}
		defer store.Close()

		if cfg.Fill > 0 {
			return store.Fill(ctx, gen, cfg.Bits, cfg.Fill)
		}
		primes = store
	case cfg.Count > 1 && common.SourceKind(cfg.Source) != common.SourceSeed:
		// A seeded run stays sequential so its output is reproducible
		buffered := pool.NewBufferedPool(ctx, gen, cfg.Count-1, cfg.Bits, log)
		defer buffered.Close()
		primes = buffered
	}

	if stats, ok := primes.(pool.Stats); ok {
		if raw, err := stats.StatsJSON(); err == nil {
			log.WithField("stats", string(raw)).Debug("using prime pool")
		}
	}

	arith := gen.Arithmetic()
	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if primes == nil {
			if err := gen.Write(out, cfg.Bits); err != nil {
				return err
			}
			continue
		}

		p, err := pool.RandomPrimeFromPool(primes, gen, cfg.Bits, log)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, arith.DecimalString(p)); err != nil {
			return err
		}
	}

	return nil
}
