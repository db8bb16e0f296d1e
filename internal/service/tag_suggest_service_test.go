package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/catalog_api/internal/service"
)

func TestTagSuggestService_Suggest(t *testing.T) {
	svc := service.NewTagSuggestService()

	t.Run("keyword hits", func(t *testing.T) {
		tags := svc.Suggest("Wireless Laptop Stand", "A modern gadget for your computer desk")
		assert.NotEmpty(t, tags)
		assert.Contains(t, tags, "electronics")
	})

	t.Run("tag named directly wins", func(t *testing.T) {
		tags := svc.Suggest("Luxury Watch", "premium luxury timepiece")
		assert.Contains(t, tags, "luxury")
	})

	t.Run("at most three", func(t *testing.T) {
		tags := svc.Suggest(
			"Modern vintage classic luxury premium kitchen sofa",
			"electronics clothing home garden office sports books toys",
		)
		assert.Len(t, tags, 3)
	})

	t.Run("no match means empty not nil", func(t *testing.T) {
		tags := svc.Suggest("Xyzzy", "qwfp zxcv")
		assert.Equal(t, []string{}, tags)
	})

	t.Run("case insensitive", func(t *testing.T) {
		lower := svc.Suggest("coffee maker", "brews coffee and tea")
		upper := svc.Suggest("COFFEE MAKER", "BREWS COFFEE AND TEA")
		assert.Equal(t, lower, upper)
		assert.Contains(t, lower, "beverages")
	})
}
