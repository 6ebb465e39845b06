package transcript

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/dgraph-io/badger/v4"
)

// BadgerSink stores records in a badger database.
// Keys are the big-endian record time in nanoseconds, a per-sink sequence
// number and the xxhash of the text, so iteration order is arrival order and
// identical records never share a key.
type BadgerSink struct {
	db  *badger.DB
	seq atomic.Uint64
}

func NewBadgerSink(path string) (*BadgerSink, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("unable to open badger store: %w", err)
	}
	return &BadgerSink{db: db}, nil
}

func (s *BadgerSink) String() string {
	return "transcript-badger"
}

func (s *BadgerSink) Append(_ context.Context, rec Record) error {
	wire, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := recordKey(rec, s.seq.Add(1))
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, wire)
	})
}

func (s *BadgerSink) Records(ctx context.Context) (recs []Record, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			wire, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var rec Record
			if err := json.Unmarshal(wire, &rec); err != nil {
				return fmt.Errorf("corrupt transcript record: %w", err)
			}
			recs = append(recs, rec)
		}
		return nil
	})
	return
}

func (s *BadgerSink) Close() error {
	return s.db.Close()
}

func recordKey(rec Record, seq uint64) []byte {
	key := make([]byte, 24)
	binary.BigEndian.PutUint64(key[:8], uint64(rec.Time.UnixNano()))
	binary.BigEndian.PutUint64(key[8:16], seq)
	binary.BigEndian.PutUint64(key[16:], xxhash.Sum64([]byte(rec.Text)))
	return key
}
