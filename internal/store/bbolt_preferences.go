package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketPreferences = []byte("preferences")

type BoltPreferences struct {
	db *bolt.DB
}

func NewBoltPreferences(path string) (*BoltPreferences, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("preferences db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltPreferences{db: db}, nil
}

func (s *BoltPreferences) GetFlag(_ context.Context, key string) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, errFlagKeyRequired
	}
	var value bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(key))
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, &value)
	})
	if err != nil {
		return false, err
	}
	return value, nil
}

func (s *BoltPreferences) SetFlag(_ context.Context, key string, value bool) error {
	if strings.TrimSpace(key) == "" {
		return errFlagKeyRequired
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		if b == nil {
			return errors.New("preferences bucket missing")
		}
		return b.Put([]byte(key), raw)
	})
}

func (s *BoltPreferences) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
