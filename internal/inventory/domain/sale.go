package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AnonymousCustomer labels sales recorded without a customer name.
const AnonymousCustomer = "Anonymous"

// CustomerMaxLength bounds the customer label of a sale, in runes.
const CustomerMaxLength = 100

// Sale is an immutable record of a completed sale. ProductName and UnitPrice
// are captured when the sale happens and never re-derived.
type Sale struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Customer    string          `json:"customer"`
	UserID      string          `json:"userId,omitempty"`
	Date        time.Time       `json:"date"`
}

// SaleFilter is an inclusive date window; nil bounds are open.
type SaleFilter struct {
	Start *time.Time
	End   *time.Time
}

// Match reports whether t falls inside the window.
func (f SaleFilter) Match(t time.Time) bool {
	if f.Start != nil && t.Before(*f.Start) {
		return false
	}
	if f.End != nil && t.After(*f.End) {
		return false
	}
	return true
}

// FilterSales returns the sales inside the window, preserving order.
func FilterSales(sales []Sale, filter SaleFilter) []Sale {
	out := make([]Sale, 0, len(sales))
	for _, s := range sales {
		if filter.Match(s.Date) {
			out = append(out, s)
		}
	}
	return out
}

// TopSeller is a per-product rollup of sold quantity and revenue.
type TopSeller struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// CategoryRevenue is a per-category rollup of sold quantity and revenue.
type CategoryRevenue struct {
	Category Category        `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity int             `json:"quantity"`
}

// RankTopSellers groups sales by product and orders them by summed quantity,
// descending. Ties keep the order in which each product was first sold, and
// the name is the one captured by that first sale.
func RankTopSellers(sales []Sale, limit int) []TopSeller {
	if limit <= 0 {
		return []TopSeller{}
	}

	index := make(map[string]int)
	var rows []TopSeller
	for _, s := range sales {
		i, ok := index[s.ProductID]
		if !ok {
			index[s.ProductID] = len(rows)
			rows = append(rows, TopSeller{
				ProductID:   s.ProductID,
				ProductName: s.ProductName,
				Quantity:    s.Quantity,
				Revenue:     s.TotalPrice,
			})
			continue
		}
		rows[i].Quantity += s.Quantity
		rows[i].Revenue = rows[i].Revenue.Add(s.TotalPrice)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Quantity > rows[j].Quantity })

	if len(rows) > limit {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []TopSeller{}
	}
	return rows
}

// SumRevenueByCategory joins sales to the current catalog. Sales whose product
// no longer exists are left out because their category is unknown. The result
// follows the canonical category order and only lists categories with sales.
func SumRevenueByCategory(sales []Sale, products []Product) []CategoryRevenue {
	categoryOf := make(map[string]Category, len(products))
	for _, p := range products {
		categoryOf[p.ID] = p.Category
	}

	totals := make(map[Category]*CategoryRevenue)
	for _, s := range sales {
		category, ok := categoryOf[s.ProductID]
		if !ok {
			continue
		}
		row, ok := totals[category]
		if !ok {
			row = &CategoryRevenue{Category: category, Revenue: decimal.Zero}
			totals[category] = row
		}
		row.Revenue = row.Revenue.Add(s.TotalPrice)
		row.Quantity += s.Quantity
	}

	out := make([]CategoryRevenue, 0, len(totals))
	for _, c := range categories {
		if row, ok := totals[c]; ok {
			out = append(out, *row)
		}
	}
	return out
}
