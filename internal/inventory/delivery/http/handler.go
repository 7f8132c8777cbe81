package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/usecase/command"
	"github.com/tair/pededrink/internal/inventory/usecase/query"
	"github.com/tair/pededrink/kafka"
	"github.com/tair/pededrink/pkg/logger"
	"github.com/tair/pededrink/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventPublisher receives domain events after a successful mutation.
type EventPublisher interface {
	PublishSaleRecorded(ctx context.Context, event kafka.SaleRecordedEvent) error
	PublishStockAdjusted(ctx context.Context, event kafka.StockAdjustedEvent) error
}

// Commands groups the write-side handlers.
type Commands struct {
	Create *command.CreateProductHandler
	Update *command.UpdateProductHandler
	Delete *command.DeleteProductHandler
	Stock  *command.StockCoordinator
}

// Queries groups the read-side handlers.
type Queries struct {
	Get        *query.GetProductHandler
	List       *query.ListProductsHandler
	LowStock   *query.LowStockHandler
	Stats      *query.GetStatsHandler
	Sales      *query.ListSalesHandler
	TopSellers *query.TopSellersHandler
	Reports    *query.ReportAggregator
}

// InventoryHandler handles HTTP requests for products, sales and reports
type InventoryHandler struct {
	commands Commands
	queries  Queries
	events   EventPublisher
	metrics  *middleware.HTTPMetrics
	now      func() time.Time

	salesRecorded prometheus.Counter
	salesRevenue  prometheus.Counter
	stockAdjusted *prometheus.CounterVec
}

// NewInventoryHandler creates a new inventory handler. events may be nil.
func NewInventoryHandler(
	commands Commands,
	queries Queries,
	events EventPublisher,
	metrics *middleware.HTTPMetrics,
	reg prometheus.Registerer,
) *InventoryHandler {
	h := &InventoryHandler{
		commands: commands,
		queries:  queries,
		events:   events,
		metrics:  metrics,
		now:      time.Now,
		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pededrink",
			Name:      "sales_recorded_total",
			Help:      "Total number of sales recorded",
		}),
		salesRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pededrink",
			Name:      "sales_revenue_total",
			Help:      "Revenue of recorded sales",
		}),
		stockAdjusted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pededrink",
			Name:      "stock_adjustments_total",
			Help:      "Manual stock corrections by operation",
		}, []string{"operation"}),
	}
	reg.MustRegister(h.salesRecorded, h.salesRevenue, h.stockAdjusted)
	return h
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details []string    `json:"details,omitempty"`
}

func (h *InventoryHandler) route(router *mux.Router, path, method string, next http.HandlerFunc) {
	router.HandleFunc(path, h.metrics.Wrap(path, middleware.AuthMiddleware(next))).Methods(method)
}

// RegisterRoutes registers every inventory route. Static segments are
// registered before {id} so they are not captured as ids.
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	h.route(router, "/api/products", http.MethodGet, h.ListProducts)
	h.route(router, "/api/products", http.MethodPost, h.CreateProduct)
	h.route(router, "/api/products/low-stock", http.MethodGet, h.LowStock)
	h.route(router, "/api/products/categories", http.MethodGet, h.Categories)
	h.route(router, "/api/products/stats/overview", http.MethodGet, h.StatsOverview)
	h.route(router, "/api/products/{id}", http.MethodGet, h.GetProduct)
	h.route(router, "/api/products/{id}", http.MethodPut, h.UpdateProduct)
	h.route(router, "/api/products/{id}", http.MethodDelete, h.DeleteProduct)
	h.route(router, "/api/products/{id}/stock", http.MethodPatch, h.AdjustStock)

	h.route(router, "/api/sales", http.MethodGet, h.ListSales)
	h.route(router, "/api/sales", http.MethodPost, h.RecordSale)
	h.route(router, "/api/sales/top", http.MethodGet, h.TopSellers)
	h.route(router, "/api/sales/export", http.MethodGet, h.ExportSales)

	h.route(router, "/api/reports/dashboard", http.MethodGet, h.Dashboard)
	h.route(router, "/api/reports/period", http.MethodGet, h.PeriodReport)
}

// respondError maps domain errors to HTTP statuses. Only unexpected
// failures are logged.
func (h *InventoryHandler) respondError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var (
		validation   *domain.ValidationError
		notFound     *domain.NotFoundError
		duplicate    *domain.DuplicateNameError
		insufficient *domain.InsufficientStockError
	)

	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid data",
			Details: validation.Rules,
		})
	case errors.As(err, &notFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: notFound.Error()})
	case errors.As(err, &duplicate):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: duplicate.Error()})
	case errors.As(err, &insufficient):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: insufficient.Error()})
	default:
		logger.Error(r.Context()).Err(err).Msg(action)
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Internal server error",
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondBadRequest(w http.ResponseWriter, message string, details ...string) {
	respondJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error:   message,
		Details: details,
	})
}
