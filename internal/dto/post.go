package dto

import (
	"time"

	"github.com/devlegal/internal/content"
	"github.com/devlegal/internal/models"
)

// CategoryRef 文章内嵌的分类摘要
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagRef 文章内嵌的标签摘要
type TagRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post 文章响应
type Post struct {
	ID              uint         `json:"id"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Content         string       `json:"content"`
	Excerpt         string       `json:"excerpt"`
	FeaturedImage   string       `json:"featured_image"`
	Published       bool         `json:"published"`
	CommentsEnabled bool         `json:"comments_enabled"`
	Views           int64        `json:"views"`
	ReadingTime     int          `json:"reading_time"`
	CategoryID      *uint        `json:"category_id"`
	Category        *CategoryRef `json:"categories"`
	Tags            []TagRef     `json:"tags"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewPost 从模型构建文章响应
func NewPost(post *models.Post) *Post {
	if post == nil {
		return nil
	}
	out := &Post{
		ID:              post.ID,
		Title:           post.Title,
		Slug:            post.Slug,
		Content:         post.Content,
		Excerpt:         post.Excerpt,
		FeaturedImage:   post.FeaturedImage,
		Published:       post.Published,
		CommentsEnabled: post.CommentsEnabled,
		Views:           post.Views,
		ReadingTime:     content.ReadingTime(post.Content),
		CategoryID:      post.CategoryID,
		Tags:            make([]TagRef, 0, len(post.Tags)),
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
	if post.Category != nil {
		out.Category = &CategoryRef{ID: post.Category.ID, Name: post.Category.Name, Slug: post.Category.Slug}
	}
	for _, tag := range post.Tags {
		out.Tags = append(out.Tags, TagRef{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	return out
}

// NewPosts 批量构建文章响应
func NewPosts(posts []models.Post) []Post {
	out := make([]Post, 0, len(posts))
	for i := range posts {
		out = append(out, *NewPost(&posts[i]))
	}
	return out
}
