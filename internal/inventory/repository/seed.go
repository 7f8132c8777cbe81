package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tair/pededrink/internal/inventory/domain"
)

// DemoProducts is the starter catalog used when SEED_DEMO_DATA is enabled.
func DemoProducts() []domain.NewProduct {
	return []domain.NewProduct{
		{Name: "Skol Beer 350ml", Price: decimal.RequireFromString("2.50"), Quantity: 150, Category: domain.CategoryBeer, Description: "Traditional lager"},
		{Name: "Brahma Beer 350ml", Price: decimal.RequireFromString("2.80"), Quantity: 120, Category: domain.CategoryBeer},
		{Name: "Heineken Beer 350ml", Price: decimal.RequireFromString("4.50"), Quantity: 80, Category: domain.CategoryBeer},
		{Name: "Coca-Cola 2L", Price: decimal.RequireFromString("6.00"), Quantity: 75, Category: domain.CategorySoftDrink, Description: "Traditional cola"},
		{Name: "Pepsi 2L", Price: decimal.RequireFromString("5.50"), Quantity: 60, Category: domain.CategorySoftDrink},
		{Name: "Guarana 2L", Price: decimal.RequireFromString("5.00"), Quantity: 90, Category: domain.CategorySoftDrink},
		{Name: "Crystal Mineral Water 500ml", Price: decimal.RequireFromString("1.50"), Quantity: 300, Category: domain.CategoryWater, Description: "Natural mineral water"},
		{Name: "Del Valle Orange Juice 1L", Price: decimal.RequireFromString("4.50"), Quantity: 45, Category: domain.CategoryJuice},
		{Name: "Red Bull 250ml", Price: decimal.RequireFromString("8.00"), Quantity: 25, Category: domain.CategoryEnergyDrink},
		{Name: "Sweet Red Wine 750ml", Price: decimal.RequireFromString("15.00"), Quantity: 30, Category: domain.CategoryWine},
		{Name: "Johnnie Walker Red 1L", Price: decimal.RequireFromString("85.00"), Quantity: 8, Category: domain.CategoryWhisky},
		{Name: "Smirnoff Vodka 1L", Price: decimal.RequireFromString("45.00"), Quantity: 12, Category: domain.CategoryVodka},
	}
}
