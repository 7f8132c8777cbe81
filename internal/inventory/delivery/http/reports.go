package http

import (
	"fmt"
	"net/http"
	"strconv"
)

type categoryCSVRow struct {
	Category              string `csv:"category"`
	Revenue               string `csv:"revenue"`
	Quantity              int    `csv:"quantity"`
	PercentOfTotalRevenue string `csv:"percent_of_total_revenue"`
	AverageRevenuePerSale string `csv:"average_revenue_per_sale"`
}

// Dashboard handles GET /api/reports/dashboard
func (h *InventoryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.queries.Reports.Dashboard(h.now())
	if err != nil {
		h.respondError(w, r, err, "Failed to build dashboard")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: dashboard})
}

// PeriodReport handles GET /api/reports/period. format=csv exports the
// per-category breakdown.
func (h *InventoryHandler) PeriodReport(w http.ResponseWriter, r *http.Request) {
	start, end, rules := dateWindow(r)
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		rules = append(rules, fmt.Sprintf("unknown format %q", format))
	}
	if len(rules) > 0 {
		respondBadRequest(w, "Invalid data", rules...)
		return
	}

	report, err := h.queries.Reports.PeriodReport(start, end)
	if err != nil {
		h.respondError(w, r, err, "Failed to build period report")
		return
	}

	if format == "csv" {
		rows := make([]categoryCSVRow, 0, len(report.Categories))
		for _, c := range report.Categories {
			rows = append(rows, categoryCSVRow{
				Category:              string(c.Category),
				Revenue:               c.Revenue.StringFixed(2),
				Quantity:              c.Quantity,
				PercentOfTotalRevenue: strconv.FormatFloat(c.PercentOfTotalRevenue, 'f', 2, 64),
				AverageRevenuePerSale: c.AverageRevenuePerSale.StringFixed(2),
			})
		}
		h.respondCSV(w, r, fmt.Sprintf("report-%s.csv", h.now().Format("20060102")), &rows)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: report})
}
