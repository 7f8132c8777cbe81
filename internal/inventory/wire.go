//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/pededrink/internal/config"
	"github.com/tair/pededrink/internal/inventory/delivery/http"
	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/jobs"
	"github.com/tair/pededrink/internal/inventory/repository"
	"github.com/tair/pededrink/internal/inventory/usecase/command"
	"github.com/tair/pededrink/internal/inventory/usecase/query"
	"github.com/tair/pededrink/pkg/middleware"
)

// Wire sets
var StateSet = wire.NewSet(
	ProvideCatalog,
	ProvideLedger,
	repository.NewState,
)

var UnitOfWorkSet = wire.NewSet(
	wire.Bind(new(domain.UnitOfWork), new(*repository.State)),
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
	command.NewStockCoordinator,
	wire.Struct(new(http.Commands), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewLowStockHandler,
	query.NewGetStatsHandler,
	query.NewListSalesHandler,
	query.NewTopSellersHandler,
	query.NewReportAggregator,
	wire.Struct(new(http.Queries), "*"),
)

// InitializeState builds the catalog and ledger on top of store
func InitializeState(cfg config.Config, store domain.SnapshotStore) (*repository.State, error) {
	wire.Build(StateSet)
	return nil, nil
}

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	state *repository.State,
	events http.EventPublisher,
	metrics *middleware.HTTPMetrics,
	reg prometheus.Registerer,
) *http.InventoryHandler {
	wire.Build(
		UnitOfWorkSet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewInventoryHandler,
	)
	return nil
}

// InitializeLowStockSweep initializes the scheduled low-stock job
func InitializeLowStockSweep(state *repository.State, reg prometheus.Registerer) *jobs.LowStockSweep {
	wire.Build(
		UnitOfWorkSet,
		jobs.NewLowStockSweep,
	)
	return nil
}
