package jobs

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/repository"
)

func newState(t *testing.T) *repository.State {
	t.Helper()
	state := repository.NewState(
		repository.NewMemoryCatalog(domain.DefaultMaxPrice, 10),
		repository.NewMemoryLedger(),
		repository.NewMemorySnapshotStore(),
	)
	require.NoError(t, state.Load(context.Background()))
	return state
}

func TestLowStockSweep_Run(t *testing.T) {
	state := newState(t)
	_, err := state.Seed(context.Background(), []domain.NewProduct{
		{Name: "Tonic Water", Price: decimal.RequireFromString("3.00"), Quantity: 2, Category: domain.CategoryWater},
		{Name: "Lager", Price: decimal.RequireFromString("5.00"), Quantity: 40, Category: domain.CategoryBeer},
		{Name: "Cola", Price: decimal.RequireFromString("4.00"), Quantity: 10, Category: domain.CategorySoftDrink},
	})
	require.NoError(t, err)

	sweep := NewLowStockSweep(state, prometheus.NewRegistry())
	low := sweep.Run(context.Background())

	require.Len(t, low, 2)
	assert.Equal(t, "Tonic Water", low[0].Name)
	assert.Equal(t, "Cola", low[1].Name)
	assert.Equal(t, float64(2), testutil.ToFloat64(sweep.lowStockProducts))
	assert.Equal(t, float64(3), testutil.ToFloat64(sweep.totalProducts))
	assert.Equal(t, float64(246), testutil.ToFloat64(sweep.stockValue))
}

func TestLowStockSweep_StartRejectsBadSchedule(t *testing.T) {
	sweep := NewLowStockSweep(newState(t), prometheus.NewRegistry())
	assert.Error(t, sweep.Start("not a schedule"))

	require.NoError(t, sweep.Start("@every 1h"))
	sweep.Stop(context.Background())
}
