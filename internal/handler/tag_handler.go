package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/catalog_api/internal/service"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// TagHandler handles tag suggestion HTTP endpoints.
type TagHandler struct {
	tagService *service.TagSuggestService
}

// NewTagHandler constructs a TagHandler.
func NewTagHandler(tagService *service.TagSuggestService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// SuggestTags handles POST /v1/admin/products/suggest-tags
func (h *TagHandler) SuggestTags(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	tags := h.tagService.Suggest(req.Name, req.Description)
	utils.Success(c, 200, "Tags suggested", gin.H{
		"suggestedTags": tags,
	})
}
