package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/usecase/command"
	"github.com/tair/pededrink/internal/inventory/usecase/query"
	"github.com/tair/pededrink/kafka"
	"github.com/tair/pededrink/pkg/logger"
	"github.com/tair/pededrink/pkg/middleware"
)

type saleRequest struct {
	ProductID    string `json:"productId"`
	Quantity     *int   `json:"quantity"`
	CustomerName string `json:"customerName"`
	Customer     string `json:"customer"`
	Date         string `json:"date"`
}

// saleCSVRow is one line of the sales export
type saleCSVRow struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	ProductID   string `csv:"product_id"`
	ProductName string `csv:"product_name"`
	Quantity    int    `csv:"quantity"`
	UnitPrice   string `csv:"unit_price"`
	TotalPrice  string `csv:"total_price"`
	Customer    string `csv:"customer"`
	UserID      string `csv:"user_id"`
}

// ListSales handles GET /api/sales
func (h *InventoryHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	start, end, rules := dateWindow(r)
	if len(rules) > 0 {
		respondBadRequest(w, "Invalid data", rules...)
		return
	}

	sales, err := h.queries.Sales.Handle(query.ListSalesQuery{Start: start, End: end})
	if err != nil {
		h.respondError(w, r, err, "Failed to list sales")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"sales": sales,
			"total": len(sales),
		},
	})
}

// RecordSale handles POST /api/sales
func (h *InventoryHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	var rules []string
	if strings.TrimSpace(req.ProductID) == "" {
		rules = append(rules, "productId is required")
	}
	if req.Quantity == nil {
		rules = append(rules, "quantity is required")
	}
	date, err := parseDate(req.Date, false)
	if err != nil {
		rules = append(rules, err.Error())
	}
	if len(rules) > 0 {
		respondBadRequest(w, "Invalid data", rules...)
		return
	}

	cmd := command.RecordSaleCommand{
		ProductID: strings.TrimSpace(req.ProductID),
		Quantity:  *req.Quantity,
		Customer:  firstOf(req.CustomerName, req.Customer),
		UserID:    middleware.UserIDFromContext(r.Context()),
	}
	if date != nil {
		cmd.Date = *date
	}

	result, err := h.commands.Stock.RecordSale(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err, "Failed to record sale")
		return
	}

	h.salesRecorded.Inc()
	h.salesRevenue.Add(result.Sale.TotalPrice.InexactFloat64())
	h.publishSale(r, result)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Sale recorded successfully",
		Data:    result,
	})
}

func (h *InventoryHandler) publishSale(r *http.Request, result *command.SaleResult) {
	if h.events == nil {
		return
	}
	sale := result.Sale
	err := h.events.PublishSaleRecorded(r.Context(), kafka.SaleRecordedEvent{
		SaleID:      sale.ID,
		ProductID:   sale.ProductID,
		ProductName: sale.ProductName,
		Quantity:    sale.Quantity,
		UnitPrice:   sale.UnitPrice,
		TotalPrice:  sale.TotalPrice,
		Customer:    sale.Customer,
		UserID:      sale.UserID,
		StockAfter:  result.Product.Quantity,
		SaleDate:    sale.Date,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Str("sale_id", sale.ID).Msg("Failed to publish sale recorded event")
	}
}

// TopSellers handles GET /api/sales/top
func (h *InventoryHandler) TopSellers(w http.ResponseWriter, r *http.Request) {
	start, end, rules := dateWindow(r)
	limit, err := intParam(r, "limit", query.DefaultTopSellersLimit)
	if err != nil {
		rules = append(rules, err.Error())
	}
	if len(rules) > 0 {
		respondBadRequest(w, "Invalid data", rules...)
		return
	}

	rows, err := h.queries.TopSellers.Handle(query.TopSellersQuery{Limit: limit, Start: start, End: end})
	if err != nil {
		h.respondError(w, r, err, "Failed to rank top sellers")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": rows,
			"total":    len(rows),
		},
	})
}

// ExportSales handles GET /api/sales/export
func (h *InventoryHandler) ExportSales(w http.ResponseWriter, r *http.Request) {
	start, end, rules := dateWindow(r)
	if len(rules) > 0 {
		respondBadRequest(w, "Invalid data", rules...)
		return
	}

	sales, err := h.queries.Sales.Handle(query.ListSalesQuery{Start: start, End: end})
	if err != nil {
		h.respondError(w, r, err, "Failed to export sales")
		return
	}

	rows := make([]saleCSVRow, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, toSaleCSVRow(s))
	}
	h.respondCSV(w, r, fmt.Sprintf("sales-%s.csv", h.now().Format("20060102")), &rows)
}

func toSaleCSVRow(s domain.Sale) saleCSVRow {
	return saleCSVRow{
		ID:          s.ID,
		Date:        s.Date.UTC().Format(time.RFC3339),
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice.StringFixed(2),
		TotalPrice:  s.TotalPrice.StringFixed(2),
		Customer:    s.Customer,
		UserID:      s.UserID,
	}
}

// respondCSV writes rows, a pointer to a slice of csv-tagged structs, as an
// attachment.
func (h *InventoryHandler) respondCSV(w http.ResponseWriter, r *http.Request, filename string, rows interface{}) {
	body, err := gocsv.MarshalBytes(rows)
	if err != nil {
		h.respondError(w, r, err, "Failed to encode CSV")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
