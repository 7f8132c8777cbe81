package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/pkg/logger"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// LowStockSweep periodically logs products at or below the configured
// threshold and exports catalog gauges.
type LowStockSweep struct {
	uow   domain.UnitOfWork
	sched *cron.Cron

	lowStockProducts prometheus.Gauge
	totalProducts    prometheus.Gauge
	stockValue       prometheus.Gauge
}

// NewLowStockSweep creates the sweep and registers its gauges with reg.
func NewLowStockSweep(uow domain.UnitOfWork, reg prometheus.Registerer) *LowStockSweep {
	s := &LowStockSweep{
		uow:   uow,
		sched: cron.New(cron.WithParser(cronParser)),
		lowStockProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pededrink",
			Name:      "low_stock_products",
			Help:      "Number of products at or below the low stock threshold",
		}),
		totalProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pededrink",
			Name:      "catalog_products",
			Help:      "Number of products in the catalog",
		}),
		stockValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pededrink",
			Name:      "catalog_stock_value",
			Help:      "Sum of price times quantity over the catalog",
		}),
	}
	reg.MustRegister(s.lowStockProducts, s.totalProducts, s.stockValue)
	return s
}

// Start schedules the sweep. schedule is a cron expression or descriptor such as
// "@every 15m".
func (s *LowStockSweep) Start(schedule string) error {
	if _, err := s.sched.AddFunc(schedule, func() { s.Run(context.Background()) }); err != nil {
		return fmt.Errorf("invalid low stock schedule %q: %w", schedule, err)
	}
	s.sched.Start()
	logger.Logger.Info().Str("schedule", schedule).Msg("Low stock sweep scheduled")
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *LowStockSweep) Stop(ctx context.Context) {
	select {
	case <-s.sched.Stop().Done():
	case <-ctx.Done():
	}
}

// Run executes one sweep and returns the low stock products it found.
func (s *LowStockSweep) Run(ctx context.Context) []domain.Product {
	start := time.Now()

	var (
		low   []domain.Product
		stats domain.ProductStats
	)
	_ = s.uow.View(func(catalog domain.ProductCatalog, _ domain.SalesLedger) error {
		low = catalog.LowStock(0)
		stats = catalog.Stats()
		return nil
	})

	s.lowStockProducts.Set(float64(len(low)))
	s.totalProducts.Set(float64(stats.Total))
	s.stockValue.Set(stats.TotalValue.InexactFloat64())

	for _, p := range low {
		logger.Warn(ctx).
			Str("product_id", p.ID).
			Str("product", p.Name).
			Int("quantity", p.Quantity).
			Msg("Product is low on stock")
	}

	logger.Info(ctx).
		Int("low_stock", len(low)).
		Int("products", stats.Total).
		Dur("duration", time.Since(start)).
		Msg("Low stock sweep finished")

	return low
}
