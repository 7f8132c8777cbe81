package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for PedeDrink
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List products
// @Description List products with optional filters
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param category query string false "Category"
// @Param lowStock query bool false "Only products at or below the low stock threshold"
// @Param search query string false "Case-insensitive name search"
// @Param sortBy query string false "name, price, quantity, category or createdAt"
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *InventoryHandler) ListProductsDoc() {}

// CreateProduct godoc
// @Summary Create product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,price=number,quantity=int,category=string,image=string,description=string} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Router /api/products [post]
func (h *InventoryHandler) CreateProductDoc() {}

// LowStock godoc
// @Summary Low stock products
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param threshold query int false "Threshold between 1 and 100"
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Router /api/products/low-stock [get]
func (h *InventoryHandler) LowStockDoc() {}

// Categories godoc
// @Summary Product categories
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{categories=array}}
// @Router /api/products/categories [get]
func (h *InventoryHandler) CategoriesDoc() {}

// StatsOverview godoc
// @Summary Catalog statistics
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/products/stats/overview [get]
func (h *InventoryHandler) StatsOverviewDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *InventoryHandler) GetProductDoc() {}

// UpdateProduct godoc
// @Summary Update product
// @Description Only the supplied fields are changed
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{name=string,price=number,quantity=int,category=string,image=string,description=string} true "Fields to change"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [put]
func (h *InventoryHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *InventoryHandler) DeleteProductDoc() {}

// AdjustStock godoc
// @Summary Adjust stock
// @Description Add, subtract or set the stock of a product without recording a sale
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{operation=string,quantity=int} true "add, subtract or set"
// @Success 200 {object} object{success=bool,message=string,data=object{product=object,operation=string,previousQuantity=int,newQuantity=int}}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id}/stock [patch]
func (h *InventoryHandler) AdjustStockDoc() {}

// ListSales godoc
// @Summary List sales
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param end query string false "End date, inclusive"
// @Success 200 {object} object{success=bool,data=object{sales=array,total=int}}
// @Router /api/sales [get]
func (h *InventoryHandler) ListSalesDoc() {}

// RecordSale godoc
// @Summary Record sale
// @Description Decrements stock and appends the sale atomically
// @Tags Sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{productId=string,quantity=int,customerName=string,date=string} true "Sale data"
// @Success 201 {object} object{success=bool,message=string,data=object{sale=object,product=object}}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sales [post]
func (h *InventoryHandler) RecordSaleDoc() {}

// TopSellers godoc
// @Summary Top selling products
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum rows (default 10)"
// @Param start query string false "Start date"
// @Param end query string false "End date"
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Router /api/sales/top [get]
func (h *InventoryHandler) TopSellersDoc() {}

// ExportSales godoc
// @Summary Export sales as CSV
// @Tags Sales
// @Security BearerAuth
// @Produce text/csv
// @Param start query string false "Start date"
// @Param end query string false "End date"
// @Success 200 {string} string "CSV file"
// @Router /api/sales/export [get]
func (h *InventoryHandler) ExportSalesDoc() {}

// Dashboard godoc
// @Summary Dashboard
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/reports/dashboard [get]
func (h *InventoryHandler) DashboardDoc() {}

// PeriodReport godoc
// @Summary Period report
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Produce text/csv
// @Param start query string false "Start date"
// @Param end query string false "End date"
// @Param format query string false "json or csv"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Router /api/reports/period [get]
func (h *InventoryHandler) PeriodReportDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and store connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
