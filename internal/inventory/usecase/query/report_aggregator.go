package query

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/pededrink/internal/inventory/domain"
)

const (
	dashboardLowStockLimit = 5
	recentSalesLimit       = 10
	recentSalesWindow      = 7 * 24 * time.Hour
	periodTopProductsLimit = 10
	dayLayout              = "2006-01-02"
)

// Dashboard is the landing-page summary.
type Dashboard struct {
	TotalProducts       int              `json:"totalProducts"`
	TotalRevenue        decimal.Decimal  `json:"totalRevenue"`
	TotalSalesCount     int              `json:"totalSalesCount"`
	LowStockProducts    []domain.Product `json:"lowStockProducts"`
	LowStockCount       int              `json:"lowStockCount"`
	ActiveCategoryCount int              `json:"activeCategoryCount"`
	RecentSales         []domain.Sale    `json:"recentSales"`
	TotalStockValue     decimal.Decimal  `json:"totalStockValue"`
	AveragePrice        decimal.Decimal  `json:"averagePrice"`

	// CategoryStats covers every enumerated category, including empty ones.
	CategoryStats map[domain.Category]domain.CategorySummary `json:"categoryStats"`
}

// CategoryBreakdown is one category row of a period report.
type CategoryBreakdown struct {
	Category              domain.Category `json:"category"`
	Revenue               decimal.Decimal `json:"revenue"`
	Quantity              int             `json:"quantity"`
	PercentOfTotalRevenue float64         `json:"percentOfTotalRevenue"`
	AverageRevenuePerSale decimal.Decimal `json:"averageRevenuePerSale"`
}

// ProductBreakdown is one product row of a period report.
type ProductBreakdown struct {
	ProductID             string          `json:"productId"`
	ProductName           string          `json:"productName"`
	Quantity              int             `json:"quantity"`
	Revenue               decimal.Decimal `json:"revenue"`
	PercentOfTotalRevenue float64         `json:"percentOfTotalRevenue"`
	AverageRevenuePerSale decimal.Decimal `json:"averageRevenuePerSale"`
}

// DailySales aggregates the sales of one UTC calendar day.
type DailySales struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PeriodReport summarizes the sales of an inclusive date window.
type PeriodReport struct {
	Start           *time.Time          `json:"start,omitempty"`
	End             *time.Time          `json:"end,omitempty"`
	TotalSales      int                 `json:"totalSales"`
	TotalRevenue    decimal.Decimal     `json:"totalRevenue"`
	TotalItems      int                 `json:"totalItems"`
	UniqueCustomers int                 `json:"uniqueCustomers"`
	AverageTicket   decimal.Decimal     `json:"averageTicket"`
	Categories      []CategoryBreakdown `json:"categories"`
	TopProducts     []ProductBreakdown  `json:"topProducts"`
	SalesByDay      []DailySales        `json:"salesByDay"`
}

// ReportAggregator derives read-only reports from the catalog and the ledger.
// Both collections are read under the same lock, so a report never sees a
// sale without its stock decrement.
type ReportAggregator struct {
	uow domain.UnitOfWork
}

func NewReportAggregator(uow domain.UnitOfWork) *ReportAggregator {
	return &ReportAggregator{uow: uow}
}

// Dashboard builds the summary as of now.
func (a *ReportAggregator) Dashboard(now time.Time) (*Dashboard, error) {
	var d *Dashboard
	err := a.uow.View(func(catalog domain.ProductCatalog, ledger domain.SalesLedger) error {
		products := catalog.Snapshot()
		sales := ledger.List(domain.SaleFilter{})
		lowStock := catalog.LowStock(0)
		stats := catalog.Stats()

		revenue := decimal.Zero
		for _, s := range sales {
			revenue = revenue.Add(s.TotalPrice)
		}

		active := make(map[domain.Category]struct{})
		for _, p := range products {
			active[p.Category] = struct{}{}
		}

		since := now.Add(-recentSalesWindow)
		recent := make([]domain.Sale, 0)
		for _, s := range sales {
			if !s.Date.Before(since) {
				recent = append(recent, s)
			}
		}
		sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })
		if len(recent) > recentSalesLimit {
			recent = recent[:recentSalesLimit]
		}

		top := lowStock
		if len(top) > dashboardLowStockLimit {
			top = top[:dashboardLowStockLimit]
		}
		if top == nil {
			top = []domain.Product{}
		}

		d = &Dashboard{
			TotalProducts:       len(products),
			TotalRevenue:        revenue,
			TotalSalesCount:     len(sales),
			LowStockProducts:    top,
			LowStockCount:       len(lowStock),
			ActiveCategoryCount: len(active),
			RecentSales:         recent,
			TotalStockValue:     stats.TotalValue,
			AveragePrice:        stats.AveragePrice,
			CategoryStats:       stats.PerCategory,
		}
		return nil
	})
	return d, err
}

// PeriodReport summarizes sales dated within [start, end]. Nil bounds are open.
func (a *ReportAggregator) PeriodReport(start, end *time.Time) (*PeriodReport, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	var report *PeriodReport
	err := a.uow.View(func(catalog domain.ProductCatalog, ledger domain.SalesLedger) error {
		filter := domain.SaleFilter{Start: start, End: end}
		sales := ledger.List(filter)

		r := &PeriodReport{
			Start:        start,
			End:          end,
			TotalSales:   len(sales),
			TotalRevenue: decimal.Zero,
		}

		customers := make(map[string]struct{})
		for _, s := range sales {
			r.TotalRevenue = r.TotalRevenue.Add(s.TotalPrice)
			r.TotalItems += s.Quantity
			customers[s.Customer] = struct{}{}
		}
		r.UniqueCustomers = len(customers)
		r.AverageTicket = decimal.Zero
		if r.TotalSales > 0 {
			r.AverageTicket = r.TotalRevenue.DivRound(decimal.NewFromInt(int64(r.TotalSales)), 2)
		}

		r.Categories = make([]CategoryBreakdown, 0)
		for _, c := range ledger.RevenueByCategory(catalog.Snapshot(), filter) {
			r.Categories = append(r.Categories, CategoryBreakdown{
				Category:              c.Category,
				Revenue:               c.Revenue,
				Quantity:              c.Quantity,
				PercentOfTotalRevenue: percentOf(c.Revenue, r.TotalRevenue),
				AverageRevenuePerSale: perUnit(c.Revenue, c.Quantity),
			})
		}

		r.TopProducts = make([]ProductBreakdown, 0)
		for _, t := range ledger.TopSellers(periodTopProductsLimit, filter) {
			r.TopProducts = append(r.TopProducts, ProductBreakdown{
				ProductID:             t.ProductID,
				ProductName:           t.ProductName,
				Quantity:              t.Quantity,
				Revenue:               t.Revenue,
				PercentOfTotalRevenue: percentOf(t.Revenue, r.TotalRevenue),
				AverageRevenuePerSale: perUnit(t.Revenue, t.Quantity),
			})
		}

		r.SalesByDay = salesByDay(sales)
		report = r
		return nil
	})
	return report, err
}

// percentOf returns part/total*100 rounded to two places, or 0 for a zero total.
func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func perUnit(revenue decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(int64(quantity)), 2)
}

func salesByDay(sales []domain.Sale) []DailySales {
	index := make(map[string]int)
	days := make([]DailySales, 0)
	for _, s := range sales {
		day := s.Date.UTC().Format(dayLayout)
		i, ok := index[day]
		if !ok {
			index[day] = len(days)
			days = append(days, DailySales{Date: day, Revenue: decimal.Zero})
			i = len(days) - 1
		}
		days[i].Count++
		days[i].Revenue = days[i].Revenue.Add(s.TotalPrice)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
