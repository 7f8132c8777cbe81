package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed beverage categories a product can belong to.
type Category string

const (
	CategoryBeer        Category = "Beer"
	CategorySoftDrink   Category = "Soft Drink"
	CategoryWater       Category = "Water"
	CategoryJuice       Category = "Juice"
	CategoryEnergyDrink Category = "Energy Drink"
	CategoryWine        Category = "Wine"
	CategoryWhisky      Category = "Whisky"
	CategoryVodka       Category = "Vodka"
	CategoryOther       Category = "Other"
)

var categories = []Category{
	CategoryBeer,
	CategorySoftDrink,
	CategoryWater,
	CategoryJuice,
	CategoryEnergyDrink,
	CategoryWine,
	CategoryWhisky,
	CategoryVodka,
	CategoryOther,
}

// Categories returns the enumerated categories in their canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid reports whether c is one of the enumerated categories.
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	NameMinLength            = 2
	NameMaxLength            = 100
	PriceDecimalPlaces       = 2
	DefaultLowStockThreshold = 10
)

// DefaultMaxPrice is the upper bound for a product price unless configured otherwise.
var DefaultMaxPrice = decimal.RequireFromString("999999.99")

// Product is a sellable item and its current stock level.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    Category        `json:"category"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// StockValue is price times quantity.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// IsLowStock reports whether the product is at or below threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.Quantity <= threshold
}

// NewProduct carries the fields accepted when creating a product.
type NewProduct struct {
	Name        string
	Price       decimal.Decimal
	Quantity    int
	Category    Category
	Image       string
	Description string
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Price       *decimal.Decimal
	Quantity    *int
	Category    *Category
	Image       *string
	Description *string
}

// SortField selects the ordering used by catalog listings.
type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByQuantity  SortField = "quantity"
	SortByCategory  SortField = "category"
	SortByCreatedAt SortField = "createdAt"
)

// ParseSortField accepts an empty string as the default ordering.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case "", SortByCreatedAt:
		return SortByCreatedAt, true
	case SortByName, SortByPrice, SortByQuantity, SortByCategory:
		return SortField(s), true
	}
	return "", false
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Category     Category
	LowStockOnly bool
	Search       string
	SortBy       SortField
}

// CategorySummary aggregates the products of one category.
type CategorySummary struct {
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// ProductStats is the catalog-wide summary.
type ProductStats struct {
	Total         int                          `json:"total"`
	TotalValue    decimal.Decimal              `json:"totalValue"`
	LowStockCount int                          `json:"lowStockCount"`
	AveragePrice  decimal.Decimal              `json:"averagePrice"`
	PerCategory   map[Category]CategorySummary `json:"perCategory"`
}

// ValidateProduct checks every business rule of a product and reports all
// violations at once.
func ValidateProduct(name string, price decimal.Decimal, quantity int, category Category, maxPrice decimal.Decimal) error {
	var rules []string

	length := utf8.RuneCountInString(strings.TrimSpace(name))
	if length < NameMinLength {
		rules = append(rules, fmt.Sprintf("name must have at least %d characters", NameMinLength))
	}
	if length > NameMaxLength {
		rules = append(rules, fmt.Sprintf("name must have at most %d characters", NameMaxLength))
	}
	if !price.IsPositive() {
		rules = append(rules, "price must be greater than zero")
	} else if price.GreaterThan(maxPrice) {
		rules = append(rules, fmt.Sprintf("price must not exceed %s", maxPrice.StringFixed(2)))
	} else if !price.Equal(price.Truncate(PriceDecimalPlaces)) {
		rules = append(rules, fmt.Sprintf("price must have at most %d decimal places", PriceDecimalPlaces))
	}
	if quantity < 0 {
		rules = append(rules, "quantity must be an integer greater than or equal to zero")
	}
	if !category.IsValid() {
		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = string(c)
		}
		rules = append(rules, fmt.Sprintf("category must be one of: %s", strings.Join(names, ", ")))
	}

	if len(rules) > 0 {
		return &ValidationError{Rules: rules}
	}
	return nil
}
