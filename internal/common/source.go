package common

import (
	crand "crypto/rand"
	"io"
	"math/rand"
	"time"

	"github.com/go-errors/errors"
)

// SourceKind selects where candidate randomness comes from.
type SourceKind string

const (
	// SourceTime seeds a pseudo-random generator with the wall clock at
	// second resolution. Runs within the same second draw the same candidate.
	SourceTime SourceKind = "time"
	// SourceCrypto reads from the operating system's CSPRNG.
	SourceCrypto SourceKind = "crypto"
	// SourceSeed seeds a pseudo-random generator with a fixed value.
	SourceSeed SourceKind = "seed"
)

var ErrUnknownSource = errors.New("unknown random source")

// NewTimeSource returns a pseudo-random reader seeded with now in whole seconds.
func NewTimeSource(now time.Time) io.Reader {
	return NewSeededSource(now.Unix())
}

// NewSeededSource returns a deterministic pseudo-random reader.
func NewSeededSource(seed int64) io.Reader {
	return rand.New(rand.NewSource(seed))
}

// NewSource returns the reader for kind. seed is only used by SourceSeed and
// now only by SourceTime.
func NewSource(kind SourceKind, seed int64, now time.Time) (io.Reader, error) {
	switch kind {
	case SourceTime, "":
		return NewTimeSource(now), nil
	case SourceCrypto:
		return crand.Reader, nil
	case SourceSeed:
		return NewSeededSource(seed), nil
	default:
		return nil, errors.Errorf("%w: %q", ErrUnknownSource, string(kind))
	}
}
