package query

import (
	"fmt"
	"strings"

	"github.com/tair/pededrink/internal/inventory/domain"
)

// ListProductsQuery represents the query to list products. SortBy and
// Category are raw request values and are validated here.
type ListProductsQuery struct {
	Category     string
	LowStockOnly bool
	Search       string
	SortBy       string
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	uow domain.UnitOfWork
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(uow domain.UnitOfWork) *ListProductsHandler {
	return &ListProductsHandler{uow: uow}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(query ListProductsQuery) ([]domain.Product, error) {
	var rules []string

	category := domain.Category(strings.TrimSpace(query.Category))
	if category != "" && !category.IsValid() {
		rules = append(rules, fmt.Sprintf("unknown category %q", query.Category))
	}
	sortBy, ok := domain.ParseSortField(query.SortBy)
	if !ok {
		rules = append(rules, fmt.Sprintf("unknown sort field %q", query.SortBy))
	}
	if len(rules) > 0 {
		return nil, &domain.ValidationError{Rules: rules}
	}

	var products []domain.Product
	err := h.uow.View(func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		products = catalog.List(domain.ProductFilter{
			Category:     category,
			LowStockOnly: query.LowStockOnly,
			Search:       strings.TrimSpace(query.Search),
			SortBy:       sortBy,
		})
		return nil
	})
	return products, err
}
