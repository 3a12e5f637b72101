package dto

import (
	"time"

	"github.com/devlegal/internal/models"
)

// PostRef 评论所属文章摘要
type PostRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Comment 评论响应
type Comment struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	Post      *PostRef  `json:"posts,omitempty"`
}

// NewComment 从模型构建评论响应
func NewComment(comment *models.Comment) *Comment {
	if comment == nil {
		return nil
	}
	out := &Comment{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Name:      comment.Name,
		Email:     comment.Email,
		Content:   comment.Content,
		Approved:  comment.Approved,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Post != nil {
		out.Post = &PostRef{ID: comment.Post.ID, Title: comment.Post.Title, Slug: comment.Post.Slug}
	}
	return out
}

// NewComments 批量构建评论响应
func NewComments(comments []models.Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for i := range comments {
		out = append(out, *NewComment(&comments[i]))
	}
	return out
}
