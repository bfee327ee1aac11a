package pool

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/randomprime/big"
	"github.com/privacybydesign/randomprime/internal/common"
)

// retryDelay is how long the filler waits after a failed generation.
const retryDelay = time.Second

// BufferedPool keeps up to Size primes of one bit length in memory, refilled
// by a background goroutine.
type BufferedPool struct {
	mu     sync.Mutex // guards primes
	primes []*big.Int // buffered primes, popped from the end
	Size   int        // maximum number of buffered primes
	bits   int        // bit length of the buffered primes
	gen    *common.Generator
	log    logrus.FieldLogger

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewBufferedPool starts filling a buffer of size primes of the given bit
// length. The filler stops when ctx is cancelled or Close is called.
func NewBufferedPool(ctx context.Context, gen *common.Generator, size, bits int, log logrus.FieldLogger) *BufferedPool {
	ctx, cancel := context.WithCancel(ctx)
	s := &BufferedPool{
		primes: make([]*big.Int, 0, size),
		Size:   size,
		bits:   bits,
		gen:    gen,
		log:    log.WithField("pool", "buffered"),
		wake:   make(chan struct{}, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go s.fill(ctx)

	return s
}

func (s *BufferedPool) fill(ctx context.Context) {
	defer close(s.done)

	for {
		if ctx.Err() != nil {
			return
		}

		// Buffer full: wait for a fetch
		if s.Len() >= s.Size {
			select {
			case <-ctx.Done():
				return
			case <-s.wake:
			}
			continue
		}

		if err := s.AddNewPrimeToBuffer(); err != nil {
			s.log.WithError(err).Warn("could not generate prime")
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
		}
	}
}

// Fetch pops a buffered prime. Requests for another bit length, or against
// a depleted buffer, are served by generating inline.
func (s *BufferedPool) Fetch(bits int) (*big.Int, error) {
	if bits != s.bits {
		return s.gen.Generate(bits)
	}

	s.mu.Lock()
	n := len(s.primes)
	if n == 0 {
		s.mu.Unlock()
		s.log.WithField("size", s.Size).Info("the buffer has depleted")
		return s.gen.Generate(bits)
	}
	p := s.primes[n-1]
	s.primes = s.primes[:n-1]
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return p, nil
}

// AddNewPrimeToBuffer generates a new prime and adds it to the buffer if not
// already full.
func (s *BufferedPool) AddNewPrimeToBuffer() error {
	if s.Len() >= s.Size {
		return nil
	}

	p, err := s.gen.Generate(s.bits)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.primes) < s.Size {
		s.primes = append(s.primes, p)
	}
	return nil
}

// Len returns the number of buffered primes.
func (s *BufferedPool) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.primes)
}

func (s *BufferedPool) StatsJSON() ([]byte, error) {
	type Stats struct {
		Name     string
		Bits     int
		Size     int
		Buffered int
	}
	return json.Marshal(Stats{
		Name:     "buffered",
		Bits:     s.bits,
		Size:     s.Size,
		Buffered: s.Len(),
	})
}

// Close stops the background filler. A generation already in flight still
// completes before the filler exits.
func (s *BufferedPool) Close() {
	s.cancel()
}
