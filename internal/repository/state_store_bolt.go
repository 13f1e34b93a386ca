package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	boltStateBucket = "state"

	boltOpenTimeout = 2 * time.Second
)

// BoltStateStore is a file-backed StateStore. TTLs are ignored: old
// hour buckets are simply never read again, which is correct for this
// store's usage, just not space-minimal.
type BoltStateStore struct {
	db *bolt.DB
}

// NewBoltStateStore opens (or creates) the database file at path.
func NewBoltStateStore(path string) (*BoltStateStore, error) {
	if path == "" {
		return nil, errors.New("empty bolt path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltStateBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStateStore{db: db}, nil
}

func (s *BoltStateStore) Close() error { return s.db.Close() }

func (s *BoltStateStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltStateBucket)).Put([]byte(key), value)
	})
}

func (s *BoltStateStore) Get(_ context.Context, key string) ([]byte, error) {
	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(boltStateBucket)).Get([]byte(key)); v != nil {
			val = append([]byte(nil), v...)
		}
		return nil
	})
	return val, err
}

func (s *BoltStateStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltStateBucket)).Delete([]byte(key))
	})
}

func (s *BoltStateStore) Exists(_ context.Context, key string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(boltStateBucket)).Get([]byte(key)) != nil
		return nil
	})
	return found, err
}

var _ StateStore = (*BoltStateStore)(nil)
