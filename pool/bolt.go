package pool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/privacybydesign/randomprime/big"
	"github.com/privacybydesign/randomprime/internal/common"
)

// BucketName is where the primes of one bit length are stored (sprintf'ed)
const BucketName = "primes_%d"

// BoltDBFile is the default filename of the boltDB storage
const BoltDBFile = "primes.db"

var ErrEmpty = errors.New("no precalculated prime available")

// BoltPool stores precalculated primes in a bolt database.
type BoltPool struct {
	client *bolt.DB
	path   string
	log    logrus.FieldLogger
}

func OpenBoltPool(path string, log logrus.FieldLogger) (*BoltPool, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.WrapPrefix(err, "open prime store "+path, 0)
	}

	return &BoltPool{
		client: db,
		path:   path,
		log:    log.WithField("pool", "bolt"),
	}, nil
}

func bucketName(bits int) []byte {
	return []byte(fmt.Sprintf(BucketName, bits))
}

// Put stores p as a prime of the given requested bit length.
func (b *BoltPool) Put(bits int, p *big.Int) error {
	rec := NewRecord(bits, p, time.Now())
	key, err := rec.Key()
	if err != nil {
		return err
	}
	value, err := rec.MarshalBinary()
	if err != nil {
		return errors.WrapPrefix(err, "encode prime record", 0)
	}

	return b.client.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName(bits))
		if err != nil {
			return err
		}
		return bucket.Put(key, value)
	})
}

// Fetch removes and returns one stored prime, or ErrEmpty.
func (b *BoltPool) Fetch(bits int) (*big.Int, error) {
	var (
		rec Record
		p   *big.Int
	)

	err := b.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName(bits))
		if bucket == nil {
			return nil
		}

		// Corrupt records are dropped so they cannot block the bucket
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.First() {
			var err error
			if err = rec.UnmarshalBinary(v); err == nil {
				if p, err = rec.Int(); err == nil {
					return bucket.Delete(k)
				}
			}

			b.log.WithError(err).WithField("bits", bits).Warn("dropping corrupt prime record")
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrEmpty
	}

	b.log.WithFields(logrus.Fields{
		"bits":        bits,
		"fingerprint": rec.Fingerprint(),
	}).Debug("fetched precalculated prime")

	return p, nil
}

// Count returns the number of stored primes of the given bit length.
func (b *BoltPool) Count(bits int) (int, error) {
	n := 0
	err := b.client.View(func(tx *bolt.Tx) error {
		if bucket := tx.Bucket(bucketName(bits)); bucket != nil {
			n = bucket.Stats().KeyN
		}
		return nil
	})
	return n, err
}

// Fill generates n primes of the given bit length and stores them. It stops
// early, returning ctx.Err(), when ctx is cancelled between primes.
func (b *BoltPool) Fill(ctx context.Context, gen *common.Generator, bits, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, err := gen.Generate(bits)
		if err != nil {
			return err
		}
		if err := b.Put(bits, p); err != nil {
			return err
		}

		b.log.WithFields(logrus.Fields{
			"bits":        bits,
			"fingerprint": NewRecord(bits, p, time.Time{}).Fingerprint(),
			"stored":      i + 1,
		}).Info("stored precalculated prime")
	}
	return nil
}

func (b *BoltPool) StatsJSON() ([]byte, error) {
	type Stats struct {
		Name string
		Path string
	}
	return json.Marshal(Stats{
		Name: "bolt",
		Path: b.path,
	})
}

func (b *BoltPool) Close() error {
	return b.client.Close()
}
