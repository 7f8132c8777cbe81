package repository

import (
	"context"
	"sync"

	"github.com/tair/pededrink/internal/inventory/domain"
)

var _ domain.SnapshotStore = (*MemorySnapshotStore)(nil)

// MemorySnapshotStore keeps the last snapshot in process memory. It backs the
// "memory" store driver and tests.
type MemorySnapshotStore struct {
	mu       sync.Mutex
	snapshot *domain.Snapshot
	saves    int
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (s *MemorySnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, nil
	}
	out := copySnapshot(*s.snapshot)
	return &out, nil
}

func (s *MemorySnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := copySnapshot(snapshot)
	s.snapshot = &stored
	s.saves++
	return nil
}

// Saves counts successful Save calls.
func (s *MemorySnapshotStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemorySnapshotStore) Close() error { return nil }

func copySnapshot(s domain.Snapshot) domain.Snapshot {
	return domain.Snapshot{
		Products: append([]domain.Product{}, s.Products...),
		Sales:    append([]domain.Sale{}, s.Sales...),
	}
}
