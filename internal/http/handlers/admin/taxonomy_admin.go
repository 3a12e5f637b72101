package admin

import (
	"errors"

	"github.com/devlegal/internal/dto"
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
}

// TagRequest 标签请求
type TagRequest struct {
	Name *string `json:"name" form:"name"`
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respondServiceError(c, err, "Failed to create category")
		return
	}
	requestLog(c).Infow("admin_category_created", "category_id", category.ID, "slug", category.Slug)
	response.Created(c, gin.H{"category": dto.NewCategory(category)})
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Category not found")
		return
	}
	var req CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	category, err := h.CategoryService.Update(id, service.CategoryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Category not found")
			return
		}
		respondServiceError(c, err, "Failed to update category")
		return
	}
	response.OK(c, gin.H{"category": dto.NewCategory(category)})
}

// DeleteCategory 删除分类（文章保留，分类置空）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Category not found")
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Category not found")
			return
		}
		respondServiceError(c, err, "Failed to delete category")
		return
	}
	requestLog(c).Infow("admin_category_deleted", "category_id", id)
	response.Success(c)
}

// CreateTag 创建标签
func (h *Handler) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	tag, err := h.TagService.Create(service.TagInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err, "Failed to create tag")
		return
	}
	requestLog(c).Infow("admin_tag_created", "tag_id", tag.ID, "slug", tag.Slug)
	response.Created(c, gin.H{"tag": dto.NewTag(tag)})
}

// UpdateTag 更新标签
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Tag not found")
		return
	}
	var req TagRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	tag, err := h.TagService.Update(id, service.TagInput{Name: req.Name})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Tag not found")
			return
		}
		respondServiceError(c, err, "Failed to update tag")
		return
	}
	response.OK(c, gin.H{"tag": dto.NewTag(tag)})
}

// DeleteTag 删除标签及其文章关联
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Tag not found")
		return
	}
	if err := h.TagService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Tag not found")
			return
		}
		respondServiceError(c, err, "Failed to delete tag")
		return
	}
	requestLog(c).Infow("admin_tag_deleted", "tag_id", id)
	response.Success(c)
}
