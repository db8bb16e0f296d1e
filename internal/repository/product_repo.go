package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GTDGit/catalog_api/internal/apperr"
	"github.com/GTDGit/catalog_api/internal/models"
)

// ProductQuery describes a filtered, ordered read of active products.
// Limit is the number of rows to fetch (the caller includes any look-ahead
// row itself); zero means no LIMIT clause.
type ProductQuery struct {
	Name   string
	Tag    string
	Cursor *time.Time
	Limit  int
}

// ProductUpdate carries a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Tags        *pq.StringArray
	Category    *string
	Brand       *string
}

// Empty reports whether no field is set.
func (u *ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Tags == nil && u.Category == nil && u.Brand == nil
}

// ProductRepository is the storage contract for the product table. All reads
// and mutations except Recover address active (non-deleted) rows only.
type ProductRepository interface {
	SelectPage(ctx context.Context, query ProductQuery) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, changes *ProductUpdate) (*models.Product, error)
	SoftDelete(ctx context.Context, id string) error
	Recover(ctx context.Context, id string) (*models.Product, error)
}

type pgProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a PostgreSQL-backed ProductRepository.
func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

const productColumns = `id, name, description, price, tags, category, brand, created_at, updated_at, deleted_at`

// SelectPage returns active products matching the query in strict
// created_at DESC order. The cursor comparison is inclusive, so the row a
// cursor was derived from is returned again at the top of the page.
func (r *pgProductRepository) SelectPage(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE deleted_at IS NULL`
	args := []interface{}{}
	argIdx := 1

	if query.Name != "" {
		q += fmt.Sprintf(" AND LOWER(name) LIKE $%d", argIdx)
		args = append(args, "%"+strings.ToLower(query.Name)+"%")
		argIdx++
	}
	if query.Tag != "" {
		q += fmt.Sprintf(" AND $%d = ANY(tags)", argIdx)
		args = append(args, query.Tag)
		argIdx++
	}
	if query.Cursor != nil {
		q += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *query.Cursor)
		argIdx++
	}

	q += " ORDER BY created_at DESC"
	if query.Limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, query.Limit)
	}

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, q, args...); err != nil {
		return nil, apperr.Database("failed to list products", err)
	}
	return products, nil
}

// GetByID returns the active product with the given id.
func (r *pgProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Database("failed to get product", err)
	}
	return &p, nil
}

// Insert persists a new product. The database assigns both timestamps;
// they are scanned back into the given struct.
func (r *pgProductRepository) Insert(ctx context.Context, product *models.Product) error {
	const q = `
        INSERT INTO products (id, name, description, price, tags, category, brand)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Tags,
		product.Category,
		product.Brand,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return apperr.Database("failed to create product", err)
	}
	product.DeletedAt = nil
	return nil
}

// Update applies the set fields of changes to an active row and refreshes
// updated_at. Absent fields keep their stored values.
func (r *pgProductRepository) Update(ctx context.Context, id string, changes *ProductUpdate) (*models.Product, error) {
	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if changes.Name != nil {
		appendSet("name", *changes.Name)
	}
	if changes.Description != nil {
		appendSet("description", *changes.Description)
	}
	if changes.Price != nil {
		appendSet("price", *changes.Price)
	}
	if changes.Tags != nil {
		appendSet("tags", *changes.Tags)
	}
	if changes.Category != nil {
		appendSet("category", *changes.Category)
	}
	if changes.Brand != nil {
		appendSet("brand", *changes.Brand)
	}

	q := fmt.Sprintf(`UPDATE products SET %s, updated_at = NOW()
        WHERE id = $%d AND deleted_at IS NULL
        RETURNING `+productColumns,
		strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	var p models.Product
	if err := r.db.QueryRowxContext(ctx, q, args...).StructScan(&p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Database("failed to update product", err)
	}
	return &p, nil
}

// SoftDelete marks an active row as deleted. Deleting an already-deleted
// row reports NotFound since the active-row predicate no longer matches.
func (r *pgProductRepository) SoftDelete(ctx context.Context, id string) error {
	const q = `UPDATE products SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING id`

	var deleted string
	if err := r.db.QueryRowxContext(ctx, q, id).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("product not found")
		}
		return apperr.Database("failed to delete product", err)
	}
	return nil
}

// Recover reactivates a soft-deleted row. Rows that are active or absent
// report NotFound.
func (r *pgProductRepository) Recover(ctx context.Context, id string) (*models.Product, error) {
	const q = `UPDATE products SET deleted_at = NULL, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NOT NULL
        RETURNING ` + productColumns

	var p models.Product
	if err := r.db.QueryRowxContext(ctx, q, id).StructScan(&p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("product not found or not deleted")
		}
		return nil, apperr.Database("failed to recover product", err)
	}
	return &p, nil
}
