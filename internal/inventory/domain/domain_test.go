package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name      string
		product   string
		price     decimal.Decimal
		quantity  int
		category  Category
		wantRules int
	}{
		{"valid", "Soda 2L", price("6.00"), 10, CategorySoftDrink, 0},
		{"zero quantity is allowed", "Soda 2L", price("6.00"), 0, CategorySoftDrink, 0},
		{"short name", "S", price("6.00"), 10, CategorySoftDrink, 1},
		{"whitespace counts as empty", "   ", price("6.00"), 10, CategorySoftDrink, 1},
		{"long name", strings.Repeat("a", NameMaxLength+1), price("6.00"), 10, CategorySoftDrink, 1},
		{"zero price", "Soda 2L", decimal.Zero, 10, CategorySoftDrink, 1},
		{"price above max", "Soda 2L", price("1000000"), 10, CategorySoftDrink, 1},
		{"three decimal places", "Soda 2L", price("1.999"), 10, CategorySoftDrink, 1},
		{"trailing zeros are fine", "Soda 2L", price("1.9900"), 10, CategorySoftDrink, 0},
		{"negative quantity", "Soda 2L", price("6.00"), -1, CategorySoftDrink, 1},
		{"unknown category", "Soda 2L", price("6.00"), 10, Category("Tea"), 1},
		{"everything wrong", "", price("-1"), -5, Category(""), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProduct(tt.product, tt.price, tt.quantity, tt.category, DefaultMaxPrice)
			if tt.wantRules == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Rules, tt.wantRules)
		})
	}
}

func TestValidateProduct_NameLengthCountsRunes(t *testing.T) {
	name := strings.Repeat("á", NameMaxLength)
	assert.NoError(t, ValidateProduct(name, price("1"), 1, CategoryOther, DefaultMaxPrice))
}

func TestParseSortField(t *testing.T) {
	field, ok := ParseSortField("")
	assert.True(t, ok)
	assert.Equal(t, SortByCreatedAt, field)

	field, ok = ParseSortField("price")
	assert.True(t, ok)
	assert.Equal(t, SortByPrice, field)

	_, ok = ParseSortField("rating")
	assert.False(t, ok)
}

func TestSaleFilter_IsInclusive(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	f := SaleFilter{Start: &start, End: &end}

	assert.True(t, f.Match(start))
	assert.True(t, f.Match(end))
	assert.False(t, f.Match(start.Add(-time.Second)))
	assert.False(t, f.Match(end.Add(time.Second)))
	assert.True(t, SaleFilter{}.Match(start))
}

func TestRankTopSellers(t *testing.T) {
	sales := []Sale{
		{ProductID: "a", ProductName: "Water", Quantity: 2, TotalPrice: price("3.00")},
		{ProductID: "b", ProductName: "Beer", Quantity: 5, TotalPrice: price("12.50")},
		{ProductID: "a", ProductName: "Water renamed", Quantity: 3, TotalPrice: price("4.50")},
		{ProductID: "c", ProductName: "Juice", Quantity: 1, TotalPrice: price("4.50")},
	}

	top := RankTopSellers(sales, 10)
	require.Len(t, top, 3)

	// a and b tie at 5; a was sold first.
	assert.Equal(t, "a", top[0].ProductID)
	assert.Equal(t, "Water", top[0].ProductName)
	assert.Equal(t, 5, top[0].Quantity)
	assert.True(t, price("7.50").Equal(top[0].Revenue))
	assert.Equal(t, "b", top[1].ProductID)
	assert.Equal(t, "c", top[2].ProductID)

	assert.Len(t, RankTopSellers(sales, 1), 1)
	assert.Empty(t, RankTopSellers(sales, 0))
	assert.NotNil(t, RankTopSellers(nil, 5))
}

func TestSumRevenueByCategory(t *testing.T) {
	products := []Product{
		{ID: "beer", Category: CategoryBeer},
		{ID: "soda", Category: CategorySoftDrink},
	}
	sales := []Sale{
		{ProductID: "soda", Quantity: 4, TotalPrice: price("24.00")},
		{ProductID: "beer", Quantity: 2, TotalPrice: price("5.00")},
		{ProductID: "deleted", Quantity: 9, TotalPrice: price("99.00")},
		{ProductID: "beer", Quantity: 1, TotalPrice: price("2.50")},
	}

	rows := SumRevenueByCategory(sales, products)
	require.Len(t, rows, 2)

	assert.Equal(t, CategoryBeer, rows[0].Category)
	assert.Equal(t, 3, rows[0].Quantity)
	assert.True(t, price("7.50").Equal(rows[0].Revenue))
	assert.Equal(t, CategorySoftDrink, rows[1].Category)
	assert.True(t, price("24.00").Equal(rows[1].Revenue))
}

func TestProductStockValue(t *testing.T) {
	p := Product{Price: price("6.00"), Quantity: 10}
	assert.True(t, price("60").Equal(p.StockValue()))
	assert.True(t, p.IsLowStock(10))
	assert.False(t, p.IsLowStock(9))
}
