package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/catalog_api/internal/apperr"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/service"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// ProductHandler handles product CRUD HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /v1/admin/products
// Query params: name (substring, case-insensitive), tag (exact), cursor
// (RFC 3339 timestamp boundary), limit (positive integer).
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := models.ListFilter{
		Name: c.Query("name"),
		Tag:  c.Query("tag"),
	}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.Error(c, 400, "INVALID_REQUEST", "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}
	if v := c.Query("cursor"); v != "" {
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			utils.Error(c, 400, "INVALID_REQUEST", "cursor must be an RFC 3339 timestamp")
			return
		}
		filter.Cursor = &models.Cursor{CreatedAt: ts}
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to retrieve products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": result.Products,
	}, filter.Limit, result.NextCursor, result.HasMore)
}

// GetProduct handles GET /v1/admin/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get product")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	utils.Success(c, 201, "Product created successfully", product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	utils.Success(c, 200, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id (soft delete).
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted successfully", nil)
}

// RecoverProduct handles POST /v1/admin/products/:id/recover
func (h *ProductHandler) RecoverProduct(c *gin.Context) {
	product, err := h.productService.Recover(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to recover product")
		return
	}
	utils.Success(c, 200, "Product recovered successfully", product)
}

// respondError maps the error taxonomy onto HTTP statuses. Kinds are
// inspected via the discriminant, never via message text.
func respondError(c *gin.Context, err error, fallback string) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		utils.Error(c, 400, "INVALID_REQUEST", err.Error())
	case apperr.KindNotFound:
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", err.Error())
	case apperr.KindDatabase:
		utils.Error(c, 503, "DATABASE_ERROR", fallback)
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}
