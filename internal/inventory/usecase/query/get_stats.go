package query

import (
	"github.com/tair/pededrink/internal/inventory/domain"
)

// GetStatsHandler handles catalog statistics queries
type GetStatsHandler struct {
	uow domain.UnitOfWork
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(uow domain.UnitOfWork) *GetStatsHandler {
	return &GetStatsHandler{uow: uow}
}

// Handle returns aggregate catalog statistics
func (h *GetStatsHandler) Handle() (domain.ProductStats, error) {
	var stats domain.ProductStats
	err := h.uow.View(func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		stats = catalog.Stats()
		return nil
	})
	return stats, err
}

// Categories lists the enumerated product categories.
func (h *GetStatsHandler) Categories() []domain.Category {
	return domain.Categories()
}
