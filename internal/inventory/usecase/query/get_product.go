package query

import (
	"github.com/tair/pededrink/internal/inventory/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	uow domain.UnitOfWork
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(uow domain.UnitOfWork) *GetProductHandler {
	return &GetProductHandler{uow: uow}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(query GetProductQuery) (*domain.Product, error) {
	var product *domain.Product
	err := h.uow.View(func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		found, err := catalog.FindByID(query.ID)
		if err != nil {
			return err
		}
		product = found
		return nil
	})
	return product, err
}
