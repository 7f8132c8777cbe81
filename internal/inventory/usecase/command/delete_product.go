package command

import (
	"context"

	"github.com/tair/pededrink/internal/inventory/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	uow domain.UnitOfWork
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(uow domain.UnitOfWork) *DeleteProductHandler {
	return &DeleteProductHandler{uow: uow}
}

// Handle removes the product. Sales that reference it are kept. The boolean
// is false when no product had the given id.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (*domain.Product, bool, error) {
	var (
		removed *domain.Product
		ok      bool
	)
	err := h.uow.Update(ctx, func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		removed, ok = catalog.Delete(cmd.ID)
		if !ok {
			return domain.ErrNoChange
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return removed, ok, nil
}
