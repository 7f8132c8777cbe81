package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoChange tells a unit of work that its callback completed without
// mutating anything, so no snapshot needs to be written.
var ErrNoChange = errors.New("no change")

// ValidationError lists every business rule a request violated.
type ValidationError struct {
	Rules []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Rules, "; ")
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// DuplicateNameError reports a case-insensitive product name collision.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a product named %q already exists", e.Name)
}

// InsufficientStockError reports a stock decrease larger than what is available.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
