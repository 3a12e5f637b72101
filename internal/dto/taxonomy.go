package dto

import (
	"time"

	"github.com/devlegal/internal/models"
)

// Category 分类响应
type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Tag 标签响应
type Tag struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategory 从模型构建分类响应
func NewCategory(category *models.Category) *Category {
	if category == nil {
		return nil
	}
	return &Category{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

// NewCategories 批量构建分类响应
func NewCategories(categories []models.Category) []Category {
	out := make([]Category, 0, len(categories))
	for i := range categories {
		out = append(out, *NewCategory(&categories[i]))
	}
	return out
}

// NewTag 从模型构建标签响应
func NewTag(tag *models.Tag) *Tag {
	if tag == nil {
		return nil
	}
	return &Tag{ID: tag.ID, Name: tag.Name, Slug: tag.Slug, CreatedAt: tag.CreatedAt}
}

// NewTags 批量构建标签响应
func NewTags(tags []models.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for i := range tags {
		out = append(out, *NewTag(&tags[i]))
	}
	return out
}
