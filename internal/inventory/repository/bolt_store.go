package repository

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"

	"github.com/tair/pededrink/internal/inventory/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	snapshotBucket = []byte("pededrink")
	snapshotKey    = []byte("snapshot")
)

var _ domain.SnapshotStore = (*BoltSnapshotStore)(nil)

// BoltSnapshotStore persists the state blob into a local bbolt file.
type BoltSnapshotStore struct {
	db *bolt.DB
}

// NewBoltSnapshotStore opens (or creates) the database file at path.
func NewBoltSnapshotStore(path string) (*BoltSnapshotStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltSnapshotStore{db: db}, nil
}

func (s *BoltSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotBucket)
		if b == nil {
			return nil
		}
		if v := b.Get(snapshotKey); v != nil {
			// v is only valid inside the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *BoltSnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(snapshotBucket)
		if err != nil {
			return err
		}
		return b.Put(snapshotKey, data)
	})
}

func (s *BoltSnapshotStore) Close() error {
	return s.db.Close()
}
