package admin

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devlegal/internal/dto"
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// PostRequest 创建/更新文章请求；字段缺省表示不修改
type PostRequest struct {
	Title           *string        `json:"title"`
	Content         *string        `json:"content"`
	Excerpt         *string        `json:"excerpt"`
	FeaturedImage   *string        `json:"featured_image"`
	Published       *bool          `json:"published"`
	CommentsEnabled *bool          `json:"comments_enabled"`
	CategoryID      optionalID     `json:"category_id"`
	Tags            *[]json.Number `json:"tags"`
}

func (r PostRequest) toInput() (service.PostInput, error) {
	tagIDs, err := parseIDList(r.Tags)
	if err != nil {
		return service.PostInput{}, err
	}
	return service.PostInput{
		Title:           r.Title,
		Content:         r.Content,
		Excerpt:         r.Excerpt,
		FeaturedImage:   r.FeaturedImage,
		Published:       r.Published,
		CommentsEnabled: r.CommentsEnabled,
		CategorySet:     r.CategoryID.Set,
		CategoryID:      r.CategoryID.Value,
		TagIDs:          tagIDs,
	}, nil
}

// ToggleCommentRequest 切换评论开关请求
type ToggleCommentRequest struct {
	PostID json.Number `json:"post_id" form:"post_id"`
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	input, ok := bindPostInput(c)
	if !ok {
		return
	}
	post, err := h.PostService.Create(input)
	if err != nil {
		respondServiceError(c, err, "Failed to create post")
		return
	}
	requestLog(c).Infow("admin_post_created", "post_id", post.ID, "slug", post.Slug)
	response.Created(c, gin.H{"post": dto.NewPost(post)})
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Post not found")
		return
	}
	input, ok := bindPostInput(c)
	if !ok {
		return
	}
	post, err := h.PostService.Update(id, input)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Post not found")
			return
		}
		respondServiceError(c, err, "Failed to update post")
		return
	}
	requestLog(c).Infow("admin_post_updated", "post_id", post.ID)
	response.OK(c, gin.H{"post": dto.NewPost(post)})
}

// DeletePost 删除文章
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Post not found")
		return
	}
	if err := h.PostService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Post not found")
			return
		}
		respondServiceError(c, err, "Failed to delete post")
		return
	}
	requestLog(c).Infow("admin_post_deleted", "post_id", id)
	response.Success(c)
}

// ToggleComment 切换文章评论开关
func (h *Handler) ToggleComment(c *gin.Context) {
	var req ToggleCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Post ID is required")
		return
	}
	postID, ok := parseNumberID(req.PostID)
	if !ok {
		response.BadRequest(c, "Post ID is required")
		return
	}
	enabled, err := h.PostService.ToggleComments(postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Post not found")
			return
		}
		respondServiceError(c, err, "Failed to toggle comments")
		return
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	response.SuccessWithMsg(c, fmt.Sprintf("Comments %s successfully", state), gin.H{
		"comments_enabled": enabled,
	})
}

func bindPostInput(c *gin.Context) (service.PostInput, bool) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return service.PostInput{}, false
	}
	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, err.Error())
		return service.PostInput{}, false
	}
	return input, true
}
