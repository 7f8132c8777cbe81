package query

import (
	"github.com/tair/pededrink/internal/inventory/domain"
)

// LowStockQuery asks for products at or below Threshold. Zero means the
// configured default.
type LowStockQuery struct {
	Threshold int
}

type LowStockHandler struct {
	uow domain.UnitOfWork
}

func NewLowStockHandler(uow domain.UnitOfWork) *LowStockHandler {
	return &LowStockHandler{uow: uow}
}

func (h *LowStockHandler) Handle(query LowStockQuery) ([]domain.Product, error) {
	var products []domain.Product
	err := h.uow.View(func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		products = catalog.LowStock(query.Threshold)
		return nil
	})
	return products, err
}
