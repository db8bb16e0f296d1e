package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GTDGit/catalog_api/internal/apperr"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/repository"
	"github.com/GTDGit/catalog_api/internal/sse"
)

const (
	maxNameLen        = 255
	maxDescriptionLen = 2000
	maxCategoryLen    = 255
	maxBrandLen       = 255
)

// ProductService implements the catalog's product lifecycle: create, read,
// partial update, soft delete, recover, and cursor-paginated listing.
type ProductService struct {
	repo     repository.ProductRepository
	notifier sse.ProductNotifier
}

// NewProductService constructs a ProductService. The notifier may be nil.
func NewProductService(repo repository.ProductRepository, notifier sse.ProductNotifier) *ProductService {
	return &ProductService{repo: repo, notifier: notifier}
}

// CreateProductRequest represents the request to create a new product.
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required"`
	Tags        []string `json:"tags"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
}

// UpdateProductRequest represents a partial update. Nil fields are left
// untouched; with no fields set the update degenerates to a plain read.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Tags        *[]string `json:"tags"`
	Category    *string   `json:"category"`
	Brand       *string   `json:"brand"`
}

// List returns one page of active products matching the filter, newest
// first. When a limit is set, one extra row is fetched to decide hasMore;
// the created_at of the page's last row becomes the next cursor. The cursor
// comparison is inclusive, so the boundary row repeats as the first row of
// the next page and callers merge pages by deduplicating on id.
func (s *ProductService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult, error) {
	query := repository.ProductQuery{
		Name: filter.Name,
		Tag:  filter.Tag,
	}
	if filter.Cursor != nil {
		query.Cursor = &filter.Cursor.CreatedAt
	}
	if filter.Limit > 0 {
		query.Limit = filter.Limit + 1
	}

	rows, err := s.repo.SelectPage(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &models.ListResult{Products: rows}
	if filter.Limit > 0 && len(rows) > filter.Limit {
		result.Products = rows[:filter.Limit]
		// The cursor is the created_at of the last returned row. Because the
		// repository comparison is inclusive, that row opens the next page
		// again; callers dedupe the boundary row by id when merging pages.
		boundary := result.Products[filter.Limit-1]
		result.NextCursor = &models.Cursor{CreatedAt: boundary.CreatedAt}
		result.HasMore = true
	}
	if result.Products == nil {
		result.Products = []models.Product{}
	}
	return result, nil
}

// Get returns the active product with the given id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	if !isValidProductID(id) {
		return nil, apperr.Validation("invalid product ID")
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates the input, assigns a fresh UUID and persists the product.
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}
	if err := validateOptional("category", req.Category, maxCategoryLen); err != nil {
		return nil, err
	}
	if err := validateOptional("brand", req.Brand, maxBrandLen); err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tags:        pq.StringArray(tags),
		Category:    req.Category,
		Brand:       req.Brand,
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyProductCreated(product)
	}
	return product, nil
}

// Update applies the set fields to an active product and refreshes its
// updated_at. An update with no fields behaves as Get.
func (s *ProductService) Update(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	if !isValidProductID(id) {
		return nil, apperr.Validation("invalid product ID")
	}

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if err := validateOptional("category", req.Category, maxCategoryLen); err != nil {
		return nil, err
	}
	if err := validateOptional("brand", req.Brand, maxBrandLen); err != nil {
		return nil, err
	}

	changes := &repository.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
	}
	if req.Tags != nil {
		tags := pq.StringArray(*req.Tags)
		changes.Tags = &tags
	}

	if changes.Empty() {
		return s.repo.GetByID(ctx, id)
	}

	product, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyProductUpdated(product)
	}
	return product, nil
}

// Delete soft-deletes an active product. A second delete for the same id
// reports NotFound because the row no longer matches the active predicate.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if !isValidProductID(id) {
		return apperr.Validation("invalid product ID")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.NotifyProductDeleted(id)
	}
	return nil
}

// Recover reactivates a soft-deleted product. Active or unknown ids report
// NotFound.
func (s *ProductService) Recover(ctx context.Context, id string) (*models.Product, error) {
	if !isValidProductID(id) {
		return nil, apperr.Validation("invalid product ID")
	}
	product, err := s.repo.Recover(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyProductRecovered(product)
	}
	return product, nil
}

// isValidProductID accepts only canonical version-4, RFC 4122-variant UUIDs.
func isValidProductID(id string) bool {
	if len(id) != 36 {
		return false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

func validateName(name string) error {
	if name == "" {
		return apperr.Validation("name must not be empty")
	}
	if len(name) > maxNameLen {
		return apperr.Validation(fmt.Sprintf("name must be at most %d characters", maxNameLen))
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return apperr.Validation("description must not be empty")
	}
	if len(description) > maxDescriptionLen {
		return apperr.Validation(fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	return nil
}

func validatePrice(price float64) error {
	if price <= 0 {
		return apperr.Validation("price must be positive")
	}
	return nil
}

func validateOptional(field string, value *string, maxLen int) error {
	if value != nil && len(*value) > maxLen {
		return apperr.Validation(fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
	return nil
}
