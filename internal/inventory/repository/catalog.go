package repository

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tair/pededrink/internal/inventory/domain"
)

var _ domain.ProductCatalog = (*MemoryCatalog)(nil)

// Option customizes the in-memory collections.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MemoryCatalog keeps products in insertion order. It does no locking of its
// own; State serializes access.
type MemoryCatalog struct {
	products          []domain.Product
	maxPrice          decimal.Decimal
	lowStockThreshold int
	options
}

// NewMemoryCatalog creates an empty catalog.
func NewMemoryCatalog(maxPrice decimal.Decimal, lowStockThreshold int, opts ...Option) *MemoryCatalog {
	if !maxPrice.IsPositive() {
		maxPrice = domain.DefaultMaxPrice
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = domain.DefaultLowStockThreshold
	}
	return &MemoryCatalog{
		maxPrice:          maxPrice,
		lowStockThreshold: lowStockThreshold,
		options:           buildOptions(opts),
	}
}

// Init replaces the collection with a loaded snapshot.
func (c *MemoryCatalog) Init(products []domain.Product) {
	c.products = append([]domain.Product(nil), products...)
}

func (c *MemoryCatalog) Snapshot() []domain.Product {
	return append([]domain.Product{}, c.products...)
}

func (c *MemoryCatalog) Create(in domain.NewProduct) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if err := domain.ValidateProduct(name, in.Price, in.Quantity, in.Category, c.maxPrice); err != nil {
		return nil, err
	}
	if c.nameTaken(name, "") {
		return nil, &domain.DuplicateNameError{Name: name}
	}

	now := c.now()
	product := domain.Product{
		ID:          c.newID(),
		Name:        name,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Category:    in.Category,
		Image:       in.Image,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.products = append(c.products, product)
	return &product, nil
}

func (c *MemoryCatalog) Update(id string, patch domain.ProductPatch) (*domain.Product, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}

	merged := c.products[i]
	if patch.Name != nil {
		merged.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Quantity != nil {
		merged.Quantity = *patch.Quantity
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.Image != nil {
		merged.Image = *patch.Image
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}

	if err := domain.ValidateProduct(merged.Name, merged.Price, merged.Quantity, merged.Category, c.maxPrice); err != nil {
		return nil, err
	}
	if c.nameTaken(merged.Name, id) {
		return nil, &domain.DuplicateNameError{Name: merged.Name}
	}

	merged.UpdatedAt = c.now()
	c.products[i] = merged
	return &merged, nil
}

func (c *MemoryCatalog) Delete(id string) (*domain.Product, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, false
	}
	removed := c.products[i]
	c.products = append(c.products[:i:i], c.products[i+1:]...)
	return &removed, true
}

func (c *MemoryCatalog) FindByID(id string) (*domain.Product, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}
	product := c.products[i]
	return &product, nil
}

func (c *MemoryCatalog) List(filter domain.ProductFilter) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.LowStockOnly && !p.IsLowStock(c.lowStockThreshold) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}

	col := collate.New(language.Und, collate.IgnoreCase)
	var less func(a, b *domain.Product) bool
	switch filter.SortBy {
	case domain.SortByName:
		less = func(a, b *domain.Product) bool { return col.CompareString(a.Name, b.Name) < 0 }
	case domain.SortByPrice:
		less = func(a, b *domain.Product) bool { return a.Price.LessThan(b.Price) }
	case domain.SortByQuantity:
		less = func(a, b *domain.Product) bool { return a.Quantity < b.Quantity }
	case domain.SortByCategory:
		less = func(a, b *domain.Product) bool {
			return col.CompareString(string(a.Category), string(b.Category)) < 0
		}
	default:
		less = func(a, b *domain.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })

	return out
}

func (c *MemoryCatalog) LowStock(threshold int) []domain.Product {
	if threshold <= 0 {
		threshold = c.lowStockThreshold
	}
	out := []domain.Product{}
	for _, p := range c.products {
		if p.IsLowStock(threshold) {
			out = append(out, p)
		}
	}
	return out
}

func (c *MemoryCatalog) Stats() domain.ProductStats {
	stats := domain.ProductStats{
		Total:        len(c.products),
		TotalValue:   decimal.Zero,
		AveragePrice: decimal.Zero,
		PerCategory:  make(map[domain.Category]domain.CategorySummary),
	}
	for _, category := range domain.Categories() {
		stats.PerCategory[category] = domain.CategorySummary{TotalValue: decimal.Zero}
	}

	priceSum := decimal.Zero
	for i := range c.products {
		p := &c.products[i]
		value := p.StockValue()
		stats.TotalValue = stats.TotalValue.Add(value)
		priceSum = priceSum.Add(p.Price)
		if p.IsLowStock(c.lowStockThreshold) {
			stats.LowStockCount++
		}
		summary := stats.PerCategory[p.Category]
		summary.Count++
		summary.TotalValue = summary.TotalValue.Add(value)
		stats.PerCategory[p.Category] = summary
	}
	if stats.Total > 0 {
		stats.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(stats.Total)))
	}
	return stats
}

func (c *MemoryCatalog) AdjustQuantity(id string, delta int) (*domain.Product, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}
	current := c.products[i].Quantity
	if current+delta < 0 {
		return nil, &domain.InsufficientStockError{ProductID: id, Requested: -delta, Available: current}
	}
	c.products[i].Quantity = current + delta
	c.products[i].UpdatedAt = c.now()
	product := c.products[i]
	return &product, nil
}

// LowStockThreshold is the configured default threshold.
func (c *MemoryCatalog) LowStockThreshold() int {
	return c.lowStockThreshold
}

func (c *MemoryCatalog) indexOf(id string) int {
	for i := range c.products {
		if c.products[i].ID == id {
			return i
		}
	}
	return -1
}

// nameTaken ignores the product identified by exceptID.
func (c *MemoryCatalog) nameTaken(name, exceptID string) bool {
	for i := range c.products {
		if c.products[i].ID != exceptID && strings.EqualFold(c.products[i].Name, name) {
			return true
		}
	}
	return false
}
