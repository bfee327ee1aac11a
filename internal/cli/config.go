// Package cli implements the randomprime command line.
package cli

import (
	"bytes"
	"flag"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-errors/errors"

	"github.com/privacybydesign/randomprime/internal/common"
)

// Config holds configuration for a randomprime run.
type Config struct {
	Bits     int
	Source   string `env:"RANDOMPRIME_SOURCE" envDefault:"time"`
	Seed     int64
	Strict   bool   `env:"RANDOMPRIME_STRICT"`
	Store    string `env:"RANDOMPRIME_STORE"`
	Fill     int
	Count    int
	LogLevel string `env:"RANDOMPRIME_LOG_LEVEL" envDefault:"warn"`

	// Warnings collects configuration problems that were ignored.
	Warnings []string
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return errors.WrapPrefix(err, "parse env", 0)
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Bits:     common.DefaultBits,
		Source:   string(common.SourceTime),
		Count:    1,
		LogLevel: "warn",
	}
}

// ParseConfig reads the environment, then flags and the optional positional
// bit length from args. Without -strict the first argument is read like atoi
// whenever it is not a valid flag, and neither it nor a bad environment value
// is ever rejected; problems are reported through Config.Warnings.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	if err := ParseEnv(&cfg); err != nil {
		cfg = defaultConfig()
		cfg.Warnings = append(cfg.Warnings, err.Error())
	}

	fs.StringVar(&cfg.Source, "source", cfg.Source, "random source: time, crypto or seed")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the seed source (implies -source seed)")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject non-numeric or out of range bit lengths")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "bolt file holding precalculated primes")
	fs.IntVar(&cfg.Fill, "fill", cfg.Fill, "precalculate this many primes into -store and exit")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "number of primes to print")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level for messages on stderr")

	// "--" is an ordinary bit length to atoi, not a flag terminator
	if len(args) > 0 && args[0] == "--" && !cfg.Strict {
		return literalConfig(cfg, args[0]), nil
	}

	// Hold back usage output until we know the error is going to be reported
	out := fs.Output()
	var usage bytes.Buffer
	fs.SetOutput(&usage)
	flagArgs, negative := splitNegativeBits(fs, args)
	err := fs.Parse(flagArgs)
	fs.SetOutput(out)
	if err != nil {
		if cfg.Strict {
			_, _ = usage.WriteTo(out)
			return Config{}, err
		}
		// Flags parsed before the failing one must not leak into the result
		base := defaultConfig()
		if envErr := ParseEnv(&base); envErr != nil {
			base = defaultConfig()
		}
		base.Warnings = cfg.Warnings
		return literalConfig(base, args[0]), nil
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Source = string(common.SourceSeed)
		}
	})

	positional := fs.Args()
	if negative != "" {
		positional = append(positional, negative)
	}
	if len(positional) > 0 {
		if cfg.Strict {
			bits, err := common.ParseBitsStrict(positional[0])
			if err != nil {
				return Config{}, err
			}
			cfg.Bits = bits
		} else {
			cfg.Bits = common.ParseBits(positional[0])
		}
	}

	if cfg.Count < 1 {
		return Config{}, errors.Errorf("count must be at least 1, got %d", cfg.Count)
	}
	if cfg.Fill < 0 {
		return Config{}, errors.Errorf("fill must not be negative, got %d", cfg.Fill)
	}
	if cfg.Fill > 0 && cfg.Store == "" {
		return Config{}, errors.New("fill requires a store")
	}

	return cfg, nil
}

// literalConfig reads arg the way the bare command does: atoi, default
// everything else.
func literalConfig(cfg Config, arg string) Config {
	cfg.Bits = common.ParseBits(arg)
	return cfg
}

// splitNegativeBits pulls a trailing negative number out of args so the flag
// parser does not mistake it for an unknown flag.
func splitNegativeBits(fs *flag.FlagSet, args []string) ([]string, string) {
	n := len(args)
	if n == 0 || !isNegativeNumber(args[n-1]) {
		return args, ""
	}
	if n > 1 && takesValue(fs, args[n-2]) {
		return args, ""
	}
	return args[:n-1], args[n-1]
}

func isNegativeNumber(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg[1] >= '0' && arg[1] <= '9'
}

func takesValue(fs *flag.FlagSet, arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") {
		return false
	}
	f := fs.Lookup(strings.TrimLeft(arg, "-"))
	if f == nil {
		return false
	}
	if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
		return false
	}
	return true
}
