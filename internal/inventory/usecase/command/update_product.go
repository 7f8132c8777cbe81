package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/pededrink/internal/inventory/domain"
)

// UpdateProductCommand represents a partial product update. Nil fields are
// left unchanged.
type UpdateProductCommand struct {
	ID          string
	Name        *string
	Price       *decimal.Decimal
	Quantity    *int
	Category    *domain.Category
	Image       *string
	Description *string
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(uow domain.UnitOfWork) *UpdateProductHandler {
	return &UpdateProductHandler{uow: uow}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	var product *domain.Product
	err := h.uow.Update(ctx, func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		updated, err := catalog.Update(cmd.ID, domain.ProductPatch{
			Name:        cmd.Name,
			Price:       cmd.Price,
			Quantity:    cmd.Quantity,
			Category:    cmd.Category,
			Image:       cmd.Image,
			Description: cmd.Description,
		})
		if err != nil {
			return err
		}
		product = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
