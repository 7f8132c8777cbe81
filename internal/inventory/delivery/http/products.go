package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/usecase/command"
	"github.com/tair/pededrink/internal/inventory/usecase/query"
	"github.com/tair/pededrink/kafka"
	"github.com/tair/pededrink/pkg/logger"
	"github.com/tair/pededrink/pkg/middleware"
)

const (
	minLowStockThreshold = 1
	maxLowStockThreshold = 100
)

type productRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

type productPatchRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Category    *string          `json:"category"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
}

type stockRequest struct {
	Operation string `json:"operation"`
	Quantity  *int   `json:"quantity"`
}

// ListProducts handles GET /api/products
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	lowStock, err := boolParam(r, "lowStock")
	if err != nil {
		respondBadRequest(w, "Invalid data", err.Error())
		return
	}

	q := r.URL.Query()
	products, err := h.queries.List.Handle(query.ListProductsQuery{
		Category:     q.Get("category"),
		LowStockOnly: lowStock,
		Search:       q.Get("search"),
		SortBy:       q.Get("sortBy"),
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    len(products),
		},
	})
}

// LowStock handles GET /api/products/low-stock
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold, err := intParam(r, "threshold", 0)
	if err == nil && r.URL.Query().Has("threshold") &&
		(threshold < minLowStockThreshold || threshold > maxLowStockThreshold) {
		err = errThresholdRange
	}
	if err != nil {
		respondBadRequest(w, "Invalid data", err.Error())
		return
	}

	products, err := h.queries.LowStock.Handle(query.LowStockQuery{Threshold: threshold})
	if err != nil {
		h.respondError(w, r, err, "Failed to list low stock products")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    len(products),
		},
	})
}

// Categories handles GET /api/products/categories
func (h *InventoryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"categories": h.queries.Stats.Categories(),
		},
	})
}

// StatsOverview handles GET /api/products/stats/overview
func (h *InventoryHandler) StatsOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.Stats.Handle()
	if err != nil {
		h.respondError(w, r, err, "Failed to compute product stats")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// GetProduct handles GET /api/products/{id}
func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.queries.Get.Handle(query.GetProductQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		h.respondError(w, r, err, "Failed to get product")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// CreateProduct handles POST /api/products
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	product, err := h.commands.Create.Handle(r.Context(), command.CreateProductCommand{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    domain.Category(strings.TrimSpace(req.Category)),
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to create product")
		return
	}

	logger.Info(r.Context()).
		Str("product_id", product.ID).
		Str("name", product.Name).
		Msg("Product created")

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *InventoryHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	cmd := command.UpdateProductCommand{
		ID:          mux.Vars(r)["id"],
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Image:       req.Image,
		Description: req.Description,
	}
	if req.Category != nil {
		category := domain.Category(strings.TrimSpace(*req.Category))
		cmd.Category = &category
	}

	product, err := h.commands.Update.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *InventoryHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, ok, err := h.commands.Delete.Handle(r.Context(), command.DeleteProductCommand{ID: id})
	if err != nil {
		h.respondError(w, r, err, "Failed to delete product")
		return
	}
	if !ok {
		h.respondError(w, r, &domain.NotFoundError{Entity: "product", ID: id}, "Failed to delete product")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
		Data:    product,
	})
}

// AdjustStock handles PATCH /api/products/{id}/stock
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}
	if req.Quantity == nil {
		respondBadRequest(w, "Invalid data", "quantity is required")
		return
	}

	result, err := h.commands.Stock.AdjustStock(r.Context(), command.AdjustStockCommand{
		ProductID: mux.Vars(r)["id"],
		Operation: req.Operation,
		Amount:    *req.Quantity,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to adjust stock")
		return
	}

	h.stockAdjusted.WithLabelValues(result.Operation).Inc()
	if h.events != nil {
		event := kafka.StockAdjustedEvent{
			ProductID:        result.Product.ID,
			Operation:        result.Operation,
			Amount:           *req.Quantity,
			PreviousQuantity: result.PreviousQuantity,
			NewQuantity:      result.NewQuantity,
			UserID:           middleware.UserIDFromContext(r.Context()),
		}
		if err := h.events.PublishStockAdjusted(r.Context(), event); err != nil {
			logger.Warn(r.Context()).Err(err).Str("product_id", event.ProductID).Msg("Failed to publish stock adjusted event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    result,
	})
}
