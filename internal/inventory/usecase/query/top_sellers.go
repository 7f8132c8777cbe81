package query

import (
	"time"

	"github.com/tair/pededrink/internal/inventory/domain"
)

const (
	DefaultTopSellersLimit = 10
	MaxTopSellersLimit     = 100
)

// TopSellersQuery represents the query for best-selling products
type TopSellersQuery struct {
	Limit int
	Start *time.Time
	End   *time.Time
}

// TopSellersHandler handles top sellers query
type TopSellersHandler struct {
	uow domain.UnitOfWork
}

// NewTopSellersHandler creates a new top sellers handler
func NewTopSellersHandler(uow domain.UnitOfWork) *TopSellersHandler {
	return &TopSellersHandler{uow: uow}
}

// Handle executes the top sellers query
func (h *TopSellersHandler) Handle(query TopSellersQuery) ([]domain.TopSeller, error) {
	if err := validateWindow(query.Start, query.End); err != nil {
		return nil, err
	}
	if query.Limit > MaxTopSellersLimit {
		query.Limit = MaxTopSellersLimit
	}

	var rows []domain.TopSeller
	err := h.uow.View(func(_ domain.ProductCatalog, ledger domain.SalesLedger) error {
		rows = ledger.TopSellers(query.Limit, domain.SaleFilter{Start: query.Start, End: query.End})
		return nil
	})
	return rows, err
}
