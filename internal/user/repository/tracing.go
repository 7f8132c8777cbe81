package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pededrink/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

var _ domain.UserRepository = (*TracingUserRepository)(nil)

// TracingUserRepository wraps a UserRepository with spans
type TracingUserRepository struct {
	next domain.UserRepository
}

// NewTracingUserRepository creates a new repository with tracing
func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

// Create with tracing
func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("user.username", user.Username),
			attribute.String("user.role", user.Role),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, user); err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	return nil
}

// FindByID with tracing
func (r *TracingUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.String("user.id", id)),
	)
	defer span.End()
	user, err := r.next.FindByID(ctx, id)
	return found(span, user, err)
}

// FindByUsername with tracing
func (r *TracingUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByUsername",
		trace.WithAttributes(attribute.String("user.username", username)),
	)
	defer span.End()
	user, err := r.next.FindByUsername(ctx, username)
	return found(span, user, err)
}

// FindByEmail with tracing
func (r *TracingUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByEmail")
	defer span.End()
	user, err := r.next.FindByEmail(ctx, email)
	return found(span, user, err)
}

func found(span trace.Span, user *domain.User, err error) (*domain.User, error) {
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	return user, nil
}

// FindAll with tracing
func (r *TracingUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	users, err := r.next.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(users)))
	return users, nil
}

// Update with tracing
func (r *TracingUserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(attribute.String("user.id", user.ID)),
	)
	defer span.End()

	if err := r.next.Update(ctx, user); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// Delete with tracing
func (r *TracingUserRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.String("user.id", id)),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// CountByRole with tracing
func (r *TracingUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.CountByRole",
		trace.WithAttributes(attribute.String("user.role", role)),
	)
	defer span.End()

	count, err := r.next.CountByRole(ctx, role)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

// Count with tracing
func (r *TracingUserRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
