package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GTDGit/catalog_api/internal/apperr"
	"github.com/GTDGit/catalog_api/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the SQL semantics closely enough for service-level tests:
// active-row predicates, inclusive cursor comparison, created_at DESC order.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
	lastTs   time.Time
}

// NewMockProductRepository creates an empty in-memory repository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// nextTimestamp returns a strictly increasing millisecond-resolution time so
// created_at stays a usable pagination boundary even for rapid inserts.
func (r *MockProductRepository) nextTimestamp() time.Time {
	ts := time.Now().UTC().Truncate(time.Millisecond)
	if !ts.After(r.lastTs) {
		ts = r.lastTs.Add(time.Millisecond)
	}
	r.lastTs = ts
	return ts
}

func (r *MockProductRepository) SelectPage(_ context.Context, query ProductQuery) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.DeletedAt != nil {
			continue
		}
		if query.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query.Name)) {
			continue
		}
		if query.Tag != "" && !containsTag(p.Tags, query.Tag) {
			continue
		}
		if query.Cursor != nil && p.CreatedAt.After(*query.Cursor) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, apperr.NotFound("product not found")
	}
	return &p, nil
}

func (r *MockProductRepository) Insert(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.nextTimestamp()
	product.CreatedAt = ts
	product.UpdatedAt = ts
	product.DeletedAt = nil
	r.products[product.ID] = *product
	return nil
}

func (r *MockProductRepository) Update(_ context.Context, id string, changes *ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, apperr.NotFound("product not found")
	}

	if changes.Name != nil {
		p.Name = *changes.Name
	}
	if changes.Description != nil {
		p.Description = *changes.Description
	}
	if changes.Price != nil {
		p.Price = *changes.Price
	}
	if changes.Tags != nil {
		p.Tags = *changes.Tags
	}
	if changes.Category != nil {
		p.Category = changes.Category
	}
	if changes.Brand != nil {
		p.Brand = changes.Brand
	}
	p.UpdatedAt = r.nextTimestamp()

	r.products[id] = p
	return &p, nil
}

func (r *MockProductRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || p.DeletedAt != nil {
		return apperr.NotFound("product not found")
	}

	ts := r.nextTimestamp()
	p.DeletedAt = &ts
	p.UpdatedAt = ts
	r.products[id] = p
	return nil
}

func (r *MockProductRepository) Recover(_ context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || p.DeletedAt == nil {
		return nil, apperr.NotFound("product not found or not deleted")
	}

	p.DeletedAt = nil
	p.UpdatedAt = r.nextTimestamp()
	r.products[id] = p
	return &p, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
