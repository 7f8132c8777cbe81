package command

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tair/pededrink/internal/inventory/domain"
)

// Stock operations accepted by AdjustStock.
const (
	OperationAdd      = "add"
	OperationSubtract = "subtract"
	OperationSet      = "set"
)

// RecordSaleCommand represents a sale request. A zero Date means now.
type RecordSaleCommand struct {
	ProductID string
	Quantity  int
	Customer  string
	Date      time.Time
	UserID    string
}

// SaleResult is the recorded sale and the product after the decrement.
type SaleResult struct {
	Sale    domain.Sale    `json:"sale"`
	Product domain.Product `json:"product"`
}

// AdjustStockCommand represents a manual stock correction.
type AdjustStockCommand struct {
	ProductID string
	Operation string
	Amount    int
}

// StockAdjustment reports the outcome of AdjustStock.
type StockAdjustment struct {
	Product          domain.Product `json:"product"`
	Operation        string         `json:"operation"`
	PreviousQuantity int            `json:"previousQuantity"`
	NewQuantity      int            `json:"newQuantity"`
}

// StockCoordinator is the only path through which stock changes outside of
// plain catalog edits. It holds no state of its own.
type StockCoordinator struct {
	uow domain.UnitOfWork
}

// NewStockCoordinator creates a new stock coordinator
func NewStockCoordinator(uow domain.UnitOfWork) *StockCoordinator {
	return &StockCoordinator{uow: uow}
}

// RecordSale decrements stock and appends the sale in one unit of work.
// Either both happen or neither does.
func (c *StockCoordinator) RecordSale(ctx context.Context, cmd RecordSaleCommand) (*SaleResult, error) {
	var result *SaleResult
	err := c.uow.Update(ctx, func(catalog domain.ProductCatalog, ledger domain.SalesLedger) error {
		product, err := catalog.FindByID(cmd.ProductID)
		if err != nil {
			return err
		}
		if product.Quantity < cmd.Quantity {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				Requested: cmd.Quantity,
				Available: product.Quantity,
			}
		}
		var rules []string
		if cmd.Quantity <= 0 {
			rules = append(rules, "quantity must be a positive integer")
		}
		customer := strings.TrimSpace(cmd.Customer)
		if utf8.RuneCountInString(customer) > domain.CustomerMaxLength {
			rules = append(rules, fmt.Sprintf("customer must have at most %d characters", domain.CustomerMaxLength))
		}
		if len(rules) > 0 {
			return &domain.ValidationError{Rules: rules}
		}

		updated, err := catalog.AdjustQuantity(product.ID, -cmd.Quantity)
		if err != nil {
			return err
		}

		if customer == "" {
			customer = domain.AnonymousCustomer
		}
		sale, err := ledger.Record(domain.Sale{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    cmd.Quantity,
			TotalPrice:  product.Price.Mul(decimal.NewFromInt(int64(cmd.Quantity))),
			Customer:    customer,
			UserID:      cmd.UserID,
			Date:        cmd.Date,
		})
		if err != nil {
			if _, rbErr := catalog.AdjustQuantity(product.ID, cmd.Quantity); rbErr != nil {
				return fmt.Errorf("failed to restore stock after %v: %w", err, rbErr)
			}
			return err
		}

		result = &SaleResult{Sale: *sale, Product: *updated}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustStock applies a non-sale stock correction. "set" is converted to the
// equivalent delta so the non-negative rule is enforced in one place.
func (c *StockCoordinator) AdjustStock(ctx context.Context, cmd AdjustStockCommand) (*StockAdjustment, error) {
	var rules []string
	switch cmd.Operation {
	case OperationAdd, OperationSubtract, OperationSet:
	default:
		rules = append(rules, fmt.Sprintf("operation must be one of %s, %s, %s", OperationAdd, OperationSubtract, OperationSet))
	}
	if cmd.Amount < 0 {
		rules = append(rules, "amount cannot be negative")
	}
	if len(rules) > 0 {
		return nil, &domain.ValidationError{Rules: rules}
	}

	var result *StockAdjustment
	err := c.uow.Update(ctx, func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		product, err := catalog.FindByID(cmd.ProductID)
		if err != nil {
			return err
		}

		var delta int
		switch cmd.Operation {
		case OperationAdd:
			delta = cmd.Amount
		case OperationSubtract:
			delta = -cmd.Amount
		case OperationSet:
			delta = cmd.Amount - product.Quantity
		}

		updated, err := catalog.AdjustQuantity(product.ID, delta)
		if err != nil {
			return err
		}
		result = &StockAdjustment{
			Product:          *updated,
			Operation:        cmd.Operation,
			PreviousQuantity: product.Quantity,
			NewQuantity:      updated.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
