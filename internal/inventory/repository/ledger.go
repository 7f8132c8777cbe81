package repository

import (
	"github.com/tair/pededrink/internal/inventory/domain"
)

var _ domain.SalesLedger = (*MemoryLedger)(nil)

// MemoryLedger is an append-only list of sales. Like MemoryCatalog it relies
// on State for locking.
type MemoryLedger struct {
	sales []domain.Sale
	options
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger(opts ...Option) *MemoryLedger {
	return &MemoryLedger{options: buildOptions(opts)}
}

// Init replaces the collection with a loaded snapshot.
func (l *MemoryLedger) Init(sales []domain.Sale) {
	l.sales = append([]domain.Sale(nil), sales...)
}

func (l *MemoryLedger) Snapshot() []domain.Sale {
	return append([]domain.Sale{}, l.sales...)
}

// Record appends a fully built sale. Business rules were checked upstream;
// only structural completeness is verified here.
func (l *MemoryLedger) Record(sale domain.Sale) (*domain.Sale, error) {
	var rules []string
	if sale.ProductID == "" {
		rules = append(rules, "productId is required")
	}
	if sale.Quantity <= 0 {
		rules = append(rules, "quantity must be a positive integer")
	}
	if len(rules) > 0 {
		return nil, &domain.ValidationError{Rules: rules}
	}

	if sale.ID == "" {
		sale.ID = l.newID()
	}
	if sale.Date.IsZero() {
		sale.Date = l.now()
	}
	l.sales = append(l.sales, sale)
	return &sale, nil
}

func (l *MemoryLedger) List(filter domain.SaleFilter) []domain.Sale {
	return domain.FilterSales(l.sales, filter)
}

func (l *MemoryLedger) TopSellers(limit int, filter domain.SaleFilter) []domain.TopSeller {
	return domain.RankTopSellers(domain.FilterSales(l.sales, filter), limit)
}

func (l *MemoryLedger) RevenueByCategory(products []domain.Product, filter domain.SaleFilter) []domain.CategoryRevenue {
	return domain.SumRevenueByCategory(domain.FilterSales(l.sales, filter), products)
}
