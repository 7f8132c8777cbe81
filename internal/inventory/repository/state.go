package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/pkg/logger"
)

var _ domain.UnitOfWork = (*State)(nil)

// State owns the catalog and the ledger and guards both with one lock, so a
// sale's stock decrement and ledger append are observed together or not at all.
type State struct {
	mu      sync.RWMutex
	catalog *MemoryCatalog
	ledger  *MemoryLedger
	store   domain.SnapshotStore
}

// NewState wires the collections to a snapshot store.
func NewState(catalog *MemoryCatalog, ledger *MemoryLedger, store domain.SnapshotStore) *State {
	return &State{
		catalog: catalog,
		ledger:  ledger,
		store:   store,
	}
}

// Load restores the last snapshot. A store with nothing saved leaves the
// collections empty.
func (s *State) Load(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot == nil {
		s.catalog.Init(nil)
		s.ledger.Init(nil)
		return nil
	}
	s.catalog.Init(snapshot.Products)
	s.ledger.Init(snapshot.Sales)
	return nil
}

func (s *State) View(fn func(domain.ProductCatalog, domain.SalesLedger) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.catalog, s.ledger)
}

// Update runs fn exclusively. A failed save is logged and does not undo the
// in-memory change.
func (s *State) Update(ctx context.Context, fn func(domain.ProductCatalog, domain.SalesLedger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.catalog, s.ledger); err != nil {
		if errors.Is(err, domain.ErrNoChange) {
			return nil
		}
		return err
	}

	snapshot := domain.Snapshot{
		Products: s.catalog.Snapshot(),
		Sales:    s.ledger.Snapshot(),
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		logger.Error(ctx).
			Err(err).
			Int("products", len(snapshot.Products)).
			Int("sales", len(snapshot.Sales)).
			Msg("Failed to persist snapshot")
	}
	return nil
}

// Seed creates products only when the catalog is empty. It returns the number
// of products created. Either every product is created or none is.
func (s *State) Seed(ctx context.Context, products []domain.NewProduct) (int, error) {
	created := 0
	err := s.Update(ctx, func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		if len(catalog.Snapshot()) > 0 {
			return domain.ErrNoChange
		}
		for _, p := range products {
			if _, err := catalog.Create(p); err != nil {
				s.catalog.Init(nil)
				created = 0
				return fmt.Errorf("failed to seed %q: %w", p.Name, err)
			}
			created++
		}
		return nil
	})
	return created, err
}

// LowStockThreshold exposes the catalog's configured threshold.
func (s *State) LowStockThreshold() int {
	return s.catalog.LowStockThreshold()
}
