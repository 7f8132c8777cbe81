package query

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2024, month, day, hour, 0, 0, 0, time.UTC)
}

// newState builds three products and three sales:
// Soda x4 on Mar 1, Beer A x3 on Mar 2, Soda x1 on Mar 10.
func newState(t *testing.T) *repository.State {
	t.Helper()
	state := repository.NewState(
		repository.NewMemoryCatalog(domain.DefaultMaxPrice, domain.DefaultLowStockThreshold),
		repository.NewMemoryLedger(),
		repository.NewMemorySnapshotStore(),
	)

	err := state.Update(context.Background(), func(catalog domain.ProductCatalog, ledger domain.SalesLedger) error {
		beerA, err := catalog.Create(domain.NewProduct{Name: "Beer A", Price: dec("2.00"), Quantity: 10, Category: domain.CategoryBeer})
		if err != nil {
			return err
		}
		if _, err := catalog.Create(domain.NewProduct{Name: "Beer B", Price: dec("4.00"), Quantity: 5, Category: domain.CategoryBeer}); err != nil {
			return err
		}
		soda, err := catalog.Create(domain.NewProduct{Name: "Soda 2L", Price: dec("6.00"), Quantity: 50, Category: domain.CategorySoftDrink})
		if err != nil {
			return err
		}

		for _, s := range []domain.Sale{
			{ProductID: soda.ID, ProductName: soda.Name, UnitPrice: soda.Price, Quantity: 4, TotalPrice: dec("24"), Customer: "Ana", Date: at(time.March, 1, 10)},
			{ProductID: beerA.ID, ProductName: beerA.Name, UnitPrice: beerA.Price, Quantity: 3, TotalPrice: dec("6"), Customer: "Bob", Date: at(time.March, 2, 11)},
			{ProductID: soda.ID, ProductName: soda.Name, UnitPrice: soda.Price, Quantity: 1, TotalPrice: dec("6"), Customer: "Ana", Date: at(time.March, 10, 9)},
		} {
			if _, err := ledger.Record(s); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return state
}

func TestGetStats(t *testing.T) {
	stats, err := NewGetStatsHandler(newState(t)).Handle()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.True(t, dec("340").Equal(stats.TotalValue))
	assert.True(t, dec("4").Equal(stats.AveragePrice))
	assert.Equal(t, 2, stats.LowStockCount)

	beer := stats.PerCategory[domain.CategoryBeer]
	assert.Equal(t, 2, beer.Count)
	assert.True(t, dec("40").Equal(beer.TotalValue))
}

func TestListProducts_RejectsUnknownValues(t *testing.T) {
	h := NewListProductsHandler(newState(t))

	_, err := h.Handle(ListProductsQuery{SortBy: "rating", Category: "Tea"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Rules, 2)

	products, err := h.Handle(ListProductsQuery{Category: "Beer", SortBy: "price"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Beer A", products[0].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	_, err := NewGetProductHandler(newState(t)).Handle(GetProductQuery{ID: "missing"})
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestLowStock(t *testing.T) {
	h := NewLowStockHandler(newState(t))

	products, err := h.Handle(LowStockQuery{})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = h.Handle(LowStockQuery{Threshold: 5})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Beer B", products[0].Name)
}

func TestListSales_Window(t *testing.T) {
	h := NewListSalesHandler(newState(t))

	start := at(time.March, 2, 0)
	sales, err := h.Handle(ListSalesQuery{Start: &start})
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	end := at(time.March, 1, 0)
	_, err = h.Handle(ListSalesQuery{Start: &start, End: &end})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestTopSellers(t *testing.T) {
	h := NewTopSellersHandler(newState(t))

	rows, err := h.Handle(TopSellersQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Soda 2L", rows[0].ProductName)
	assert.Equal(t, 5, rows[0].Quantity)
	assert.True(t, dec("30").Equal(rows[0].Revenue))

	rows, err = h.Handle(TopSellersQuery{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPeriodReport_AllTime(t *testing.T) {
	report, err := NewReportAggregator(newState(t)).PeriodReport(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalSales)
	assert.True(t, dec("36").Equal(report.TotalRevenue))
	assert.Equal(t, 8, report.TotalItems)
	assert.Equal(t, 2, report.UniqueCustomers)
	assert.True(t, dec("12").Equal(report.AverageTicket))

	require.Len(t, report.Categories, 2)
	assert.Equal(t, domain.CategoryBeer, report.Categories[0].Category)
	assert.InDelta(t, 16.67, report.Categories[0].PercentOfTotalRevenue, 0.001)
	assert.True(t, dec("2").Equal(report.Categories[0].AverageRevenuePerSale))
	assert.Equal(t, domain.CategorySoftDrink, report.Categories[1].Category)
	assert.InDelta(t, 83.33, report.Categories[1].PercentOfTotalRevenue, 0.001)

	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, "Soda 2L", report.TopProducts[0].ProductName)
	assert.True(t, dec("6").Equal(report.TopProducts[0].AverageRevenuePerSale))

	require.Len(t, report.SalesByDay, 3)
	assert.Equal(t, "2024-03-01", report.SalesByDay[0].Date)
	assert.Equal(t, "2024-03-10", report.SalesByDay[2].Date)
	assert.Equal(t, 1, report.SalesByDay[2].Count)
}

func TestPeriodReport_Window(t *testing.T) {
	aggregator := NewReportAggregator(newState(t))

	start := at(time.March, 1, 0)
	end := time.Date(2024, 3, 2, 23, 59, 59, 0, time.UTC)
	report, err := aggregator.PeriodReport(&start, &end)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalSales)
	assert.True(t, dec("30").Equal(report.TotalRevenue))
	assert.True(t, dec("15").Equal(report.AverageTicket))

	_, err = aggregator.PeriodReport(&end, &start)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPeriodReport_Empty(t *testing.T) {
	state := repository.NewState(
		repository.NewMemoryCatalog(domain.DefaultMaxPrice, domain.DefaultLowStockThreshold),
		repository.NewMemoryLedger(),
		repository.NewMemorySnapshotStore(),
	)

	report, err := NewReportAggregator(state).PeriodReport(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, report.TotalSales)
	assert.True(t, report.AverageTicket.IsZero())
	assert.NotNil(t, report.Categories)
	assert.NotNil(t, report.TopProducts)
	assert.NotNil(t, report.SalesByDay)
}

func TestDashboard(t *testing.T) {
	d, err := NewReportAggregator(newState(t)).Dashboard(at(time.March, 10, 12))
	require.NoError(t, err)

	assert.Equal(t, 3, d.TotalProducts)
	assert.Equal(t, 3, d.TotalSalesCount)
	assert.True(t, dec("36").Equal(d.TotalRevenue))
	assert.Equal(t, 2, d.LowStockCount)
	assert.Len(t, d.LowStockProducts, 2)
	assert.Equal(t, 2, d.ActiveCategoryCount)
	assert.True(t, dec("340").Equal(d.TotalStockValue))
	assert.True(t, dec("4").Equal(d.AveragePrice))

	require.Len(t, d.RecentSales, 1)
	assert.Equal(t, 1, d.RecentSales[0].Quantity)

	assert.Len(t, d.CategoryStats, len(domain.Categories()))
	assert.Equal(t, 2, d.CategoryStats[domain.CategoryBeer].Count)
	assert.True(t, dec("40").Equal(d.CategoryStats[domain.CategoryBeer].TotalValue))
}

func TestDashboard_RecentSalesCappedNewestFirst(t *testing.T) {
	state := newState(t)
	now := at(time.March, 20, 12)

	// 12 sales inside the last week, recorded oldest first, plus one older sale.
	err := state.Update(context.Background(), func(catalog domain.ProductCatalog, ledger domain.SalesLedger) error {
		soda := catalog.List(domain.ProductFilter{Search: "Soda"})[0]
		dates := []time.Time{at(time.March, 12, 0)}
		for i := 0; i < 12; i++ {
			dates = append(dates, now.Add(-time.Duration(12-i)*time.Hour))
		}
		for i, date := range dates {
			if _, err := ledger.Record(domain.Sale{
				ProductID:   soda.ID,
				ProductName: soda.Name,
				UnitPrice:   soda.Price,
				Quantity:    i + 1,
				TotalPrice:  soda.Price.Mul(decimal.NewFromInt(int64(i + 1))),
				Date:        date,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	d, err := NewReportAggregator(state).Dashboard(now)
	require.NoError(t, err)

	require.Len(t, d.RecentSales, 10)
	for i := 1; i < len(d.RecentSales); i++ {
		assert.True(t, d.RecentSales[i-1].Date.After(d.RecentSales[i].Date))
	}
	assert.True(t, now.Add(-time.Hour).Equal(d.RecentSales[0].Date))
	assert.Equal(t, 13, d.RecentSales[0].Quantity)
	assert.Equal(t, 16, d.TotalSalesCount)
}

func TestReads_AreRepeatableAndConsistent(t *testing.T) {
	state := newState(t)
	list := NewListProductsHandler(state)
	stats := NewGetStatsHandler(state)
	aggregator := NewReportAggregator(state)
	now := at(time.March, 10, 12)

	firstList, err := list.Handle(ListProductsQuery{})
	require.NoError(t, err)
	secondList, err := list.Handle(ListProductsQuery{})
	require.NoError(t, err)
	assert.Equal(t, firstList, secondList)

	firstStats, err := stats.Handle()
	require.NoError(t, err)
	secondStats, err := stats.Handle()
	require.NoError(t, err)
	assert.Equal(t, firstStats, secondStats)
	assert.Equal(t, len(firstList), firstStats.Total)

	firstDashboard, err := aggregator.Dashboard(now)
	require.NoError(t, err)
	secondDashboard, err := aggregator.Dashboard(now)
	require.NoError(t, err)
	assert.Equal(t, firstDashboard, secondDashboard)
}
