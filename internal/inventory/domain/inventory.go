package domain

import "context"

// ProductCatalog defines the contract for the product collection.
type ProductCatalog interface {
	Create(in NewProduct) (*Product, error)
	Update(id string, patch ProductPatch) (*Product, error)
	Delete(id string) (*Product, bool)
	FindByID(id string) (*Product, error)
	List(filter ProductFilter) []Product
	LowStock(threshold int) []Product
	Stats() ProductStats
	// AdjustQuantity changes stock by delta and fails if the result would be negative.
	AdjustQuantity(id string, delta int) (*Product, error)
	Snapshot() []Product
}

// SalesLedger defines the contract for the sales history.
type SalesLedger interface {
	Record(sale Sale) (*Sale, error)
	List(filter SaleFilter) []Sale
	TopSellers(limit int, filter SaleFilter) []TopSeller
	RevenueByCategory(products []Product, filter SaleFilter) []CategoryRevenue
	Snapshot() []Sale
}

// UnitOfWork serializes access to the catalog and the ledger. View runs fn
// under a shared lock; Update runs fn exclusively and persists a snapshot
// when fn succeeds.
type UnitOfWork interface {
	View(fn func(catalog ProductCatalog, ledger SalesLedger) error) error
	Update(ctx context.Context, fn func(catalog ProductCatalog, ledger SalesLedger) error) error
}

// Snapshot is the full persisted state.
type Snapshot struct {
	Products []Product `json:"products"`
	Sales    []Sale    `json:"sales"`
}

// SnapshotStore loads and saves the state blob. Load returns a nil snapshot
// when nothing was saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
	Close() error
}
