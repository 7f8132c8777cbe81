package repository

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pededrink/internal/inventory/domain"
)

var tracer = otel.Tracer("pededrink-repository")

var _ domain.SnapshotStore = (*TracingSnapshotStore)(nil)

// TracingSnapshotStore wraps a SnapshotStore with spans
type TracingSnapshotStore struct {
	next   domain.SnapshotStore
	driver string
}

// NewTracingSnapshotStore creates a new store with tracing
func NewTracingSnapshotStore(next domain.SnapshotStore, driver string) *TracingSnapshotStore {
	return &TracingSnapshotStore{next: next, driver: driver}
}

// Load with tracing
func (s *TracingSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "snapshot.Load",
		trace.WithAttributes(
			attribute.String("store.driver", s.driver),
		),
	)
	defer span.End()

	snapshot, err := s.next.Load(ctx)
	if err != nil {
		addStoreErrorToSpan(span, err)
		return nil, err
	}

	if snapshot == nil {
		span.SetAttributes(attribute.Bool("snapshot.empty", true))
		return nil, nil
	}
	span.SetAttributes(
		attribute.Int("snapshot.products", len(snapshot.Products)),
		attribute.Int("snapshot.sales", len(snapshot.Sales)),
	)
	return snapshot, nil
}

// Save with tracing
func (s *TracingSnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	ctx, span := tracer.Start(ctx, "snapshot.Save",
		trace.WithAttributes(
			attribute.String("store.driver", s.driver),
			attribute.Int("snapshot.products", len(snapshot.Products)),
			attribute.Int("snapshot.sales", len(snapshot.Sales)),
		),
	)
	defer span.End()

	if err := s.next.Save(ctx, snapshot); err != nil {
		addStoreErrorToSpan(span, err)
		return err
	}
	return nil
}

func (s *TracingSnapshotStore) Close() error {
	return s.next.Close()
}

// Helper function to add store error details to span
func addStoreErrorToSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("store error: %v", err))
	}
}
