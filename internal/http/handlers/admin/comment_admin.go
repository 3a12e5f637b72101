package admin

import (
	"errors"

	"github.com/devlegal/internal/dto"
	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/repository"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentApprovalRequest 评论审核请求
type CommentApprovalRequest struct {
	Approved *bool `json:"approved" form:"approved"`
}

// ListComments 评论列表，支持 approved 与 post_id 过滤
func (h *Handler) ListComments(c *gin.Context) {
	filter := repository.CommentListFilter{
		Approved: handlershared.ParseOptionalBool(c, "approved"),
	}
	if raw := c.Query("post_id"); raw != "" {
		// 非法 post_id 不匹配任何评论
		postID, _ := parseQueryID(raw)
		filter.PostID = &postID
	}
	comments, err := h.CommentService.List(filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch comments")
		return
	}
	response.OK(c, gin.H{"comments": dto.NewComments(comments)})
}

// UpdateComment 审核/撤回评论
func (h *Handler) UpdateComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Comment not found")
		return
	}
	var req CommentApprovalRequest
	if err := c.ShouldBind(&req); err != nil || req.Approved == nil {
		response.BadRequest(c, "Approved flag is required")
		return
	}
	comment, err := h.CommentService.SetApproved(id, *req.Approved)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Comment not found")
			return
		}
		respondServiceError(c, err, "Failed to update comment")
		return
	}
	requestLog(c).Infow("admin_comment_moderated", "comment_id", id, "approved", comment.Approved)
	response.OK(c, gin.H{"comment": dto.NewComment(comment)})
}

// DeleteComment 删除评论
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Comment not found")
		return
	}
	if err := h.CommentService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Comment not found")
			return
		}
		respondServiceError(c, err, "Failed to delete comment")
		return
	}
	requestLog(c).Infow("admin_comment_deleted", "comment_id", id)
	response.Success(c)
}
