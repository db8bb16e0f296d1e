package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/catalog_api/internal/apperr"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/repository"
	"github.com/GTDGit/catalog_api/internal/service"
)

func newTestService() *service.ProductService {
	return service.NewProductService(repository.NewMockProductRepository(), nil)
}

func mustCreate(t *testing.T, svc *service.ProductService, name string, tags ...string) *models.Product {
	t.Helper()
	p, err := svc.Create(context.Background(), &service.CreateProductRequest{
		Name:        name,
		Description: "test product " + name,
		Price:       9.99,
		Tags:        tags,
	})
	require.NoError(t, err)
	return p
}

func TestProductService_CreateThenGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created := mustCreate(t, svc, "Widget", "tools")

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Nil(t, created.DeletedAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestProductService_DeleteLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := mustCreate(t, svc, "Doomed")

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err := svc.Get(ctx, p.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// Second delete must fail too: the row no longer matches the
	// active-row predicate.
	err = svc.Delete(ctx, p.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProductService_RecoverLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := mustCreate(t, svc, "Phoenix")
	require.NoError(t, svc.Delete(ctx, p.ID))

	recovered, err := svc.Recover(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, recovered.ID)
	assert.Nil(t, recovered.DeletedAt)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Nil(t, got.DeletedAt)

	// Recovering an active row fails.
	_, err = svc.Recover(ctx, p.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProductService_RecoverUnknownID(t *testing.T) {
	svc := newTestService()

	_, err := svc.Recover(context.Background(), uuid.New().String())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProductService_ListNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first := mustCreate(t, svc, "First")
	second := mustCreate(t, svc, "Second")
	third := mustCreate(t, svc, "Third")

	result, err := svc.List(ctx, models.ListFilter{})
	require.NoError(t, err)
	require.Len(t, result.Products, 3)
	assert.Equal(t, third.ID, result.Products[0].ID)
	assert.Equal(t, second.ID, result.Products[1].ID)
	assert.Equal(t, first.ID, result.Products[2].ID)
	assert.False(t, result.HasMore)
	assert.Nil(t, result.NextCursor)
}

func TestProductService_ListEmpty(t *testing.T) {
	svc := newTestService()

	result, err := svc.List(context.Background(), models.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []models.Product{}, result.Products)
	assert.Nil(t, result.NextCursor)
	assert.False(t, result.HasMore)
}

func TestProductService_ListExcludesDeleted(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	keep := mustCreate(t, svc, "Keeper")
	gone := mustCreate(t, svc, "Goner")
	require.NoError(t, svc.Delete(ctx, gone.ID))

	result, err := svc.List(ctx, models.ListFilter{})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, keep.ID, result.Products[0].ID)
}

func TestProductService_ListNameFilter(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Widget Deluxe")
	mustCreate(t, svc, "WIDGET mini")
	mustCreate(t, svc, "Gadget")

	result, err := svc.List(ctx, models.ListFilter{Name: "wid"})
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	for _, p := range result.Products {
		assert.Contains(t, []string{"Widget Deluxe", "WIDGET mini"}, p.Name)
	}
}

func TestProductService_ListTagFilter(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	onSale := mustCreate(t, svc, "Discounted", "sale", "clearance")
	mustCreate(t, svc, "Full Price", "premium")
	// Substring of a tag must not match.
	mustCreate(t, svc, "Wholesale", "wholesale")

	result, err := svc.List(ctx, models.ListFilter{Tag: "sale"})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, onSale.ID, result.Products[0].ID)
}

// The concrete paging scenario: five products created in order, pages of
// three. The second page opens with the boundary row from the first page.
func TestProductService_PaginationBoundaryOverlap(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var created []*models.Product
	for i := 1; i <= 5; i++ {
		created = append(created, mustCreate(t, svc, fmt.Sprintf("P%d", i)))
	}

	page1, err := svc.List(ctx, models.ListFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page1.Products, 3)
	assert.Equal(t, "P5", page1.Products[0].Name)
	assert.Equal(t, "P4", page1.Products[1].Name)
	assert.Equal(t, "P3", page1.Products[2].Name)
	assert.True(t, page1.HasMore)
	require.NotNil(t, page1.NextCursor)
	assert.Equal(t, created[2].CreatedAt, page1.NextCursor.CreatedAt)

	page2, err := svc.List(ctx, models.ListFilter{Limit: 3, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Products, 3)
	assert.Equal(t, "P3", page2.Products[0].Name) // boundary overlap
	assert.Equal(t, "P2", page2.Products[1].Name)
	assert.Equal(t, "P1", page2.Products[2].Name)
	assert.False(t, page2.HasMore)
	assert.Nil(t, page2.NextCursor)
}

// Walking all pages via nextCursor until hasMore is false yields every
// created id exactly once after deduplicating the boundary rows.
func TestProductService_PaginationCompleteness(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	const total = 10
	expected := make(map[string]bool, total)
	for i := 0; i < total; i++ {
		p := mustCreate(t, svc, fmt.Sprintf("Item %02d", i))
		expected[p.ID] = true
	}

	seen := make(map[string]int)
	filter := models.ListFilter{Limit: 3}
	for pages := 0; ; pages++ {
		require.Less(t, pages, total+1, "pagination did not terminate")

		result, err := svc.List(ctx, filter)
		require.NoError(t, err)
		for _, p := range result.Products {
			seen[p.ID]++
		}
		if !result.HasMore {
			break
		}
		require.NotNil(t, result.NextCursor)
		filter.Cursor = result.NextCursor
	}

	assert.Len(t, seen, total)
	for id := range expected {
		count := seen[id]
		// Boundary rows appear twice at most (once per adjacent page pair).
		assert.GreaterOrEqual(t, count, 1, "missing product %s", id)
		assert.LessOrEqual(t, count, 2, "product %s repeated beyond boundary overlap", id)
	}
}

func TestProductService_UpdatePartial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := mustCreate(t, svc, "Stable", "tag-a")

	newPrice := 5.0
	updated, err := svc.Update(ctx, p.ID, &service.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 5.0, updated.Price)
	assert.Equal(t, p.Name, updated.Name)
	assert.Equal(t, p.Description, updated.Description)
	assert.Equal(t, p.Tags, updated.Tags)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))
}

func TestProductService_UpdateNoFieldsBehavesAsGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := mustCreate(t, svc, "Untouched")

	got, err := svc.Update(ctx, p.ID, &service.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestProductService_UpdateDeletedRow(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := mustCreate(t, svc, "Ghost")
	require.NoError(t, svc.Delete(ctx, p.ID))

	name := "Renamed"
	_, err := svc.Update(ctx, p.ID, &service.UpdateProductRequest{Name: &name})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProductService_InvalidIDIsValidationError(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	badIDs := []string{
		"not-a-uuid",
		"",
		"123",
		"00000000-0000-1000-8000-000000000000", // version 1
		"5c2a0a3e-8f9b-4d2c-c111-0123456789ab", // wrong variant
	}

	for _, id := range badIDs {
		_, err := svc.Get(ctx, id)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "get %q", id)

		_, err = svc.Update(ctx, id, &service.UpdateProductRequest{})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "update %q", id)

		err = svc.Delete(ctx, id)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "delete %q", id)

		_, err = svc.Recover(ctx, id)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "recover %q", id)
	}
}

func TestProductService_CreateValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	longName := make([]byte, 256)
	for i := range longName {
		longName[i] = 'x'
	}

	cases := []struct {
		name string
		req  service.CreateProductRequest
	}{
		{"empty name", service.CreateProductRequest{Description: "d", Price: 1}},
		{"name too long", service.CreateProductRequest{Name: string(longName), Description: "d", Price: 1}},
		{"empty description", service.CreateProductRequest{Name: "n", Price: 1}},
		{"zero price", service.CreateProductRequest{Name: "n", Description: "d", Price: 0}},
		{"negative price", service.CreateProductRequest{Name: "n", Description: "d", Price: -3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tc.req)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestProductService_UpdateValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := mustCreate(t, svc, "Valid")

	badPrice := -1.0
	_, err := svc.Update(ctx, p.ID, &service.UpdateProductRequest{Price: &badPrice})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	empty := ""
	_, err = svc.Update(ctx, p.ID, &service.UpdateProductRequest{Name: &empty})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// A failed validation must not change the stored row.
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
