package command

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/repository"
)

type fixture struct {
	state  *repository.State
	store  *repository.MemorySnapshotStore
	create *CreateProductHandler
	update *UpdateProductHandler
	delete *DeleteProductHandler
	stock  *StockCoordinator
	soda   *domain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemorySnapshotStore()
	state := repository.NewState(
		repository.NewMemoryCatalog(domain.DefaultMaxPrice, domain.DefaultLowStockThreshold),
		repository.NewMemoryLedger(),
		store,
	)
	f := &fixture{
		state:  state,
		store:  store,
		create: NewCreateProductHandler(state),
		update: NewUpdateProductHandler(state),
		delete: NewDeleteProductHandler(state),
		stock:  NewStockCoordinator(state),
	}

	soda, err := f.create.Handle(context.Background(), CreateProductCommand{
		Name:     "Soda 2L",
		Price:    decimal.RequireFromString("6.00"),
		Quantity: 10,
		Category: domain.CategorySoftDrink,
	})
	require.NoError(t, err)
	f.soda = soda
	return f
}

func (f *fixture) sales(t *testing.T) []domain.Sale {
	t.Helper()
	var sales []domain.Sale
	require.NoError(t, f.state.View(func(_ domain.ProductCatalog, ledger domain.SalesLedger) error {
		sales = ledger.List(domain.SaleFilter{})
		return nil
	}))
	return sales
}

func (f *fixture) quantity(t *testing.T) int {
	t.Helper()
	var qty int
	require.NoError(t, f.state.View(func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		p, err := catalog.FindByID(f.soda.ID)
		if err != nil {
			return err
		}
		qty = p.Quantity
		return nil
	}))
	return qty
}

func TestRecordSale_DecrementsStockAndAppendsSale(t *testing.T) {
	f := newFixture(t)

	result, err := f.stock.RecordSale(context.Background(), RecordSaleCommand{
		ProductID: f.soda.ID,
		Quantity:  4,
		UserID:    "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, result.Product.Quantity)
	assert.True(t, decimal.RequireFromString("24").Equal(result.Sale.TotalPrice))
	assert.True(t, decimal.RequireFromString("6").Equal(result.Sale.UnitPrice))
	assert.Equal(t, "Soda 2L", result.Sale.ProductName)
	assert.Equal(t, domain.AnonymousCustomer, result.Sale.Customer)
	assert.Equal(t, "user-1", result.Sale.UserID)
	assert.False(t, result.Sale.Date.IsZero())

	assert.Equal(t, 6, f.quantity(t))
	assert.Len(t, f.sales(t), 1)
	assert.Equal(t, 2, f.store.Saves())
}

func TestRecordSale_ExactStockLeavesZero(t *testing.T) {
	f := newFixture(t)

	result, err := f.stock.RecordSale(context.Background(), RecordSaleCommand{
		ProductID: f.soda.ID,
		Quantity:  10,
		Customer:  "  Maria  ",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Product.Quantity)
	assert.Equal(t, "Maria", result.Sale.Customer)
}

func TestRecordSale_InsufficientStockChangesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.stock.RecordSale(context.Background(), RecordSaleCommand{ProductID: f.soda.ID, Quantity: 20})
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 20, insufficient.Requested)
	assert.Equal(t, 10, insufficient.Available)

	assert.Equal(t, 10, f.quantity(t))
	assert.Empty(t, f.sales(t))
	assert.Equal(t, 1, f.store.Saves())
}

func TestRecordSale_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.stock.RecordSale(ctx, RecordSaleCommand{ProductID: "missing", Quantity: 1})
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = f.stock.RecordSale(ctx, RecordSaleCommand{ProductID: f.soda.ID, Quantity: 0})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.Empty(t, f.sales(t))
}

func TestRecordSale_RejectsLongCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.stock.RecordSale(ctx, RecordSaleCommand{
		ProductID: f.soda.ID,
		Quantity:  1,
		Customer:  strings.Repeat("x", domain.CustomerMaxLength+50),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 10, f.quantity(t))
	assert.Empty(t, f.sales(t))

	result, err := f.stock.RecordSale(ctx, RecordSaleCommand{
		ProductID: f.soda.ID,
		Quantity:  1,
		Customer:  strings.Repeat("é", domain.CustomerMaxLength),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerMaxLength, len([]rune(result.Sale.Customer)))
}

func TestCreateProduct_RejectsSubCentPrice(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Handle(context.Background(), CreateProductCommand{
		Name:     "Juice 1L",
		Price:    decimal.RequireFromString("1.999"),
		Quantity: 1,
		Category: domain.CategoryJuice,
	})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRecordSale_KeepsBackdatedDate(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	result, err := f.stock.RecordSale(context.Background(), RecordSaleCommand{
		ProductID: f.soda.ID,
		Quantity:  1,
		Date:      date,
	})
	require.NoError(t, err)
	assert.True(t, date.Equal(result.Sale.Date))
}

func TestRecordSale_ConcurrentSalesNeverOversell(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.stock.RecordSale(context.Background(), RecordSaleCommand{ProductID: f.soda.ID, Quantity: 1})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, f.quantity(t))
	assert.Len(t, f.sales(t), 10)
}

func TestAdjustStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adj, err := f.stock.AdjustStock(ctx, AdjustStockCommand{ProductID: f.soda.ID, Operation: OperationAdd, Amount: 5})
	require.NoError(t, err)
	assert.Equal(t, 10, adj.PreviousQuantity)
	assert.Equal(t, 15, adj.NewQuantity)

	adj, err = f.stock.AdjustStock(ctx, AdjustStockCommand{ProductID: f.soda.ID, Operation: OperationSubtract, Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, 12, adj.NewQuantity)

	adj, err = f.stock.AdjustStock(ctx, AdjustStockCommand{ProductID: f.soda.ID, Operation: OperationSet, Amount: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, adj.PreviousQuantity)
	assert.Equal(t, 2, adj.NewQuantity)

	_, err = f.stock.AdjustStock(ctx, AdjustStockCommand{ProductID: f.soda.ID, Operation: OperationSubtract, Amount: 3})
	var insufficient *domain.InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)

	_, err = f.stock.AdjustStock(ctx, AdjustStockCommand{ProductID: f.soda.ID, Operation: "multiply", Amount: -1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Rules, 2)

	assert.Equal(t, 2, f.quantity(t))
	assert.Empty(t, f.sales(t))
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	price := decimal.RequireFromString("7.50")

	updated, err := f.update.Handle(context.Background(), UpdateProductCommand{ID: f.soda.ID, Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.Price))
	assert.Equal(t, 10, updated.Quantity)

	_, err = f.update.Handle(context.Background(), UpdateProductCommand{ID: "missing"})
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteProduct_KeepsSales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.stock.RecordSale(ctx, RecordSaleCommand{ProductID: f.soda.ID, Quantity: 2})
	require.NoError(t, err)
	saves := f.store.Saves()

	removed, ok, err := f.delete.Handle(ctx, DeleteProductCommand{ID: f.soda.ID})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Soda 2L", removed.Name)
	assert.Len(t, f.sales(t), 1)
	assert.Equal(t, saves+1, f.store.Saves())

	_, ok, err = f.delete.Handle(ctx, DeleteProductCommand{ID: f.soda.ID})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, saves+1, f.store.Saves())
}

func TestCreateProduct_Duplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Handle(context.Background(), CreateProductCommand{
		Name:     "soda 2l",
		Price:    decimal.RequireFromString("1"),
		Quantity: 1,
		Category: domain.CategorySoftDrink,
	})
	var dup *domain.DuplicateNameError
	assert.ErrorAs(t, err, &dup)
}
