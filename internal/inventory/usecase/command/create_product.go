package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/pededrink/internal/inventory/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name        string
	Price       decimal.Decimal
	Quantity    int
	Category    domain.Category
	Image       string
	Description string
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	uow domain.UnitOfWork
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(uow domain.UnitOfWork) *CreateProductHandler {
	return &CreateProductHandler{uow: uow}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	var product *domain.Product
	err := h.uow.Update(ctx, func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		created, err := catalog.Create(domain.NewProduct{
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
		product = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
