package query

import (
	"time"

	"github.com/tair/pededrink/internal/inventory/domain"
)

// ListSalesQuery represents the query to list sales in an optional window
type ListSalesQuery struct {
	Start *time.Time
	End   *time.Time
}

// ListSalesHandler handles list sales query
type ListSalesHandler struct {
	uow domain.UnitOfWork
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(uow domain.UnitOfWork) *ListSalesHandler {
	return &ListSalesHandler{uow: uow}
}

// Handle executes the list sales query
func (h *ListSalesHandler) Handle(query ListSalesQuery) ([]domain.Sale, error) {
	if err := validateWindow(query.Start, query.End); err != nil {
		return nil, err
	}

	var sales []domain.Sale
	err := h.uow.View(func(_ domain.ProductCatalog, ledger domain.SalesLedger) error {
		sales = ledger.List(domain.SaleFilter{Start: query.Start, End: query.End})
		return nil
	})
	return sales, err
}

func validateWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return &domain.ValidationError{Rules: []string{"end date must not be before start date"}}
	}
	return nil
}
