package pool

import (
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"

	"github.com/privacybydesign/randomprime/big"
)

// Record is a precalculated prime as persisted in a BoltPool.
type Record struct {
	Bits      int    `cbor:"1,keyasint"` // requested bit length
	Decimal   string `cbor:"2,keyasint"`
	CreatedAt int64  `cbor:"3,keyasint"` // unix seconds
}

func NewRecord(bits int, p *big.Int, now time.Time) Record {
	return Record{
		Bits:      bits,
		Decimal:   p.Text(10),
		CreatedAt: now.Unix(),
	}
}

// Key is the sha2-256 multihash of the decimal digits.
func (r Record) Key() ([]byte, error) {
	mh, err := multihash.Sum([]byte(r.Decimal), multihash.SHA2_256, -1)
	if err != nil {
		return nil, errors.WrapPrefix(err, "hash prime", 0)
	}
	return mh, nil
}

// Fingerprint is the base58 form of Key, used in logs.
func (r Record) Fingerprint() string {
	key, err := r.Key()
	if err != nil {
		return ""
	}
	return multihash.Multihash(key).B58String()
}

func (r Record) Int() (*big.Int, error) {
	p, ok := new(big.Int).SetString(r.Decimal, 10)
	if !ok {
		return nil, errors.Errorf("corrupt prime record %q", r.Decimal)
	}
	return p, nil
}

// plainRecord drops the BinaryMarshaler methods so cbor encodes the fields.
type plainRecord Record

func (r Record) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(plainRecord(r))
}

func (r *Record) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*plainRecord)(r))
}
