package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/repository"
	"github.com/tair/pededrink/internal/inventory/usecase/command"
	"github.com/tair/pededrink/internal/inventory/usecase/query"
	"github.com/tair/pededrink/kafka"
	"github.com/tair/pededrink/pkg/auth"
	"github.com/tair/pededrink/pkg/middleware"
)

type recordingPublisher struct {
	sales  []kafka.SaleRecordedEvent
	stocks []kafka.StockAdjustedEvent
	err    error
}

func (p *recordingPublisher) PublishSaleRecorded(_ context.Context, e kafka.SaleRecordedEvent) error {
	p.sales = append(p.sales, e)
	return p.err
}

func (p *recordingPublisher) PublishStockAdjusted(_ context.Context, e kafka.StockAdjustedEvent) error {
	p.stocks = append(p.stocks, e)
	return p.err
}

type testServer struct {
	router    *mux.Router
	state     *repository.State
	events    *recordingPublisher
	token     string
	productID string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	state := repository.NewState(
		repository.NewMemoryCatalog(domain.DefaultMaxPrice, domain.DefaultLowStockThreshold),
		repository.NewMemoryLedger(),
		repository.NewMemorySnapshotStore(),
	)
	require.NoError(t, state.Load(context.Background()))

	reg := prometheus.NewRegistry()
	events := &recordingPublisher{}
	h := NewInventoryHandler(
		Commands{
			Create: command.NewCreateProductHandler(state),
			Update: command.NewUpdateProductHandler(state),
			Delete: command.NewDeleteProductHandler(state),
			Stock:  command.NewStockCoordinator(state),
		},
		Queries{
			Get:        query.NewGetProductHandler(state),
			List:       query.NewListProductsHandler(state),
			LowStock:   query.NewLowStockHandler(state),
			Stats:      query.NewGetStatsHandler(state),
			Sales:      query.NewListSalesHandler(state),
			TopSellers: query.NewTopSellersHandler(state),
			Reports:    query.NewReportAggregator(state),
		},
		events,
		middleware.NewHTTPMetrics("pededrink_test", reg),
		reg,
	)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	h.RegisterHealthCheck(router, nil)

	token, err := auth.GenerateToken("user-1", "tester", "user")
	require.NoError(t, err)

	s := &testServer{router: router, state: state, events: events, token: token}

	rec := s.do(t, http.MethodPost, "/api/products",
		`{"name":"Soda 2L","price":6.00,"quantity":10,"category":"Soft Drink"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	s.productID = created.Data.ID
	return s
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthCheckIsPublic(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}

func TestHealthCheckReportsStoreFailure(t *testing.T) {
	router := mux.NewRouter()
	h := &InventoryHandler{now: time.Now}
	h.RegisterHealthCheck(router, func(context.Context) error { return errors.New("down") })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateProductValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/products", `{"name":"A","price":-1,"quantity":-2,"category":"Milk"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid data", resp.Error)
	assert.NotEmpty(t, resp.Details)
}

func TestCreateProductDuplicateName(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/products", `{"name":"soda 2l","price":5,"quantity":1,"category":"Soft Drink"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)
}

func TestStaticRoutesAreNotCapturedAsIDs(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Energy Drink")

	rec = s.do(t, http.MethodGet, "/api/products/low-stock", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Soda 2L")

	rec = s.do(t, http.MethodGet, "/api/products/stats/overview", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLowStockThresholdRange(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products/low-stock?threshold=500", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProductsRejectsUnknownSort(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products?sortBy=color", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordSaleFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/sales",
		`{"productId":"`+s.productID+`","quantity":4,"customerName":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data command.SaleResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 6, created.Data.Product.Quantity)
	assert.True(t, created.Data.Sale.TotalPrice.Equal(decimal.NewFromInt(24)))
	assert.Equal(t, "Ana", created.Data.Sale.Customer)
	assert.Equal(t, "user-1", created.Data.Sale.UserID)

	require.Len(t, s.events.sales, 1)
	assert.Equal(t, 6, s.events.sales[0].StockAfter)

	rec = s.do(t, http.MethodGet, "/api/sales", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/sales", `{"productId":"`+s.productID+`","quantity":20}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.events.sales)

	rec = s.do(t, http.MethodGet, "/api/products/"+s.productID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":10`)
}

func TestRecordSaleMissingFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/sales", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decodeResponse(t, rec).Details, 2)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/sales", `{"productId":"nope","quantity":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishFailureDoesNotFailSale(t *testing.T) {
	s := newTestServer(t)
	s.events.err = errors.New("broker down")

	rec := s.do(t, http.MethodPost, "/api/sales", `{"productId":"`+s.productID+`","quantity":1}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdjustStock(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPatch, "/api/products/"+s.productID+"/stock", `{"operation":"set","quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var adjusted struct {
		Data command.StockAdjustment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adjusted))
	assert.Equal(t, 10, adjusted.Data.PreviousQuantity)
	assert.Equal(t, 3, adjusted.Data.NewQuantity)
	require.Len(t, s.events.stocks, 1)

	rec = s.do(t, http.MethodPatch, "/api/products/"+s.productID+"/stock", `{"operation":"subtract","quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/products/"+s.productID+"/stock", `{"operation":"multiply","quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodDelete, "/api/products/"+s.productID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/products/"+s.productID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportSalesCSV(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/sales", `{"productId":"`+s.productID+`","quantity":2,"customer":"Bob"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/sales/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,date,product_id"))
	assert.Contains(t, lines[1], "12.00")
	assert.Contains(t, lines[1], "Bob")
}

func TestPeriodReport(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/sales", `{"productId":"`+s.productID+`","quantity":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/reports/period", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Data query.PeriodReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Data.TotalSales)
	assert.True(t, report.Data.AverageTicket.Equal(decimal.NewFromInt(24)))
	require.Len(t, report.Data.Categories, 1)
	assert.Equal(t, 100.0, report.Data.Categories[0].PercentOfTotalRevenue)

	rec = s.do(t, http.MethodGet, "/api/reports/period?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Soft Drink,24.00,4,100.00,6.00")

	rec = s.do(t, http.MethodGet, "/api/reports/period?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/reports/period?start=2024-05-10&end=2024-05-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/reports/dashboard", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard struct {
		Data query.Dashboard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	assert.Equal(t, 1, dashboard.Data.TotalProducts)
	assert.Equal(t, 1, dashboard.Data.LowStockCount)
	assert.Equal(t, 1, dashboard.Data.ActiveCategoryCount)
	assert.Len(t, dashboard.Data.CategoryStats, len(domain.Categories()))
	assert.Equal(t, 1, dashboard.Data.CategoryStats[domain.CategorySoftDrink].Count)
	assert.Equal(t, 0, dashboard.Data.CategoryStats[domain.CategoryWine].Count)
}

func TestParseDateEndOfDay(t *testing.T) {
	end, err := parseDate("2024-05-01", true)
	require.NoError(t, err)
	assert.Equal(t, 23, end.Hour())

	start, err := parseDate("2024-05-01", false)
	require.NoError(t, err)
	assert.Equal(t, 0, start.Hour())

	none, err := parseDate("  ", false)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = parseDate("yesterday", false)
	assert.Error(t, err)
}
