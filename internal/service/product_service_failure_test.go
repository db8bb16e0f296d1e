package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/catalog_api/internal/apperr"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/repository"
	"github.com/GTDGit/catalog_api/internal/service"
)

// failingProductRepository returns the same error from every operation.
type failingProductRepository struct {
	err error
}

func (r *failingProductRepository) SelectPage(context.Context, repository.ProductQuery) ([]models.Product, error) {
	return nil, r.err
}

func (r *failingProductRepository) GetByID(context.Context, string) (*models.Product, error) {
	return nil, r.err
}

func (r *failingProductRepository) Insert(context.Context, *models.Product) error {
	return r.err
}

func (r *failingProductRepository) Update(context.Context, string, *repository.ProductUpdate) (*models.Product, error) {
	return nil, r.err
}

func (r *failingProductRepository) SoftDelete(context.Context, string) error {
	return r.err
}

func (r *failingProductRepository) Recover(context.Context, string) (*models.Product, error) {
	return nil, r.err
}

// Storage failures surface to callers unchanged, still tagged as database
// errors, regardless of the operation that hit them.
func TestProductService_DatabaseErrorPassthrough(t *testing.T) {
	dbErr := apperr.Database("select products", errors.New("connection refused"))
	svc := service.NewProductService(&failingProductRepository{err: dbErr}, nil)
	ctx := context.Background()
	id := "3f1b6e1a-9c2d-4e5f-8a7b-1c2d3e4f5a6b"

	_, err := svc.List(ctx, models.ListFilter{Limit: 5})
	assert.Equal(t, apperr.KindDatabase, apperr.KindOf(err))

	_, err = svc.Get(ctx, id)
	assert.Equal(t, apperr.KindDatabase, apperr.KindOf(err))

	_, err = svc.Create(ctx, &service.CreateProductRequest{Name: "n", Description: "d", Price: 1})
	assert.Equal(t, apperr.KindDatabase, apperr.KindOf(err))

	err = svc.Delete(ctx, id)
	assert.Equal(t, apperr.KindDatabase, apperr.KindOf(err))

	_, err = svc.Recover(ctx, id)
	assert.Equal(t, apperr.KindDatabase, apperr.KindOf(err))

	// The wrapped cause stays reachable for logging.
	var appErr *apperr.Error
	assert.ErrorAs(t, err, &appErr)
	assert.EqualError(t, appErr.Unwrap(), "connection refused")
}
