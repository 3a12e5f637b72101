package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"
)

const (
	maxCommentNameLen    = 100
	maxCommentContentLen = 5000
)

// CommentService 评论业务服务
type CommentService struct {
	repo     repository.CommentRepository
	postRepo repository.PostRepository
}

// NewCommentService 创建评论服务
func NewCommentService(repo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{repo: repo, postRepo: postRepo}
}

// CommentInput 访客提交评论输入
type CommentInput struct {
	Name    string
	Email   string
	Content string
}

// List 后台评论列表
func (s *CommentService) List(filter repository.CommentListFilter) ([]models.Comment, error) {
	return s.repo.List(filter)
}

// VisibleForPost 公开可见评论：文章开放评论且评论已审核
func (s *CommentService) VisibleForPost(post *models.Post) ([]models.Comment, error) {
	if post == nil || !post.CommentsEnabled {
		return []models.Comment{}, nil
	}
	return s.repo.ListVisibleForPost(post.ID)
}

// SetApproved 审核/撤回评论
func (s *CommentService) SetApproved(id uint, approved bool) (*models.Comment, error) {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.SetApproved(id, approved); err != nil {
		return nil, err
	}
	comment.Approved = approved
	return comment, nil
}

// Delete 删除评论
func (s *CommentService) Delete(id uint) error {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// Submit 访客提交评论，默认待审核
func (s *CommentService) Submit(slug string, input CommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !post.CommentsEnabled {
		return nil, ErrCommentsDisabled
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	body := strings.TrimSpace(input.Content)
	if name == "" || email == "" || body == "" {
		return nil, newValidationError("Name, email and comment are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, newValidationError("Invalid email address")
	}
	if utf8.RuneCountInString(name) > maxCommentNameLen {
		return nil, newValidationError(fmt.Sprintf("Name must be at most %d characters", maxCommentNameLen))
	}
	if utf8.RuneCountInString(body) > maxCommentContentLen {
		return nil, newValidationError(fmt.Sprintf("Comment must be at most %d characters", maxCommentContentLen))
	}

	comment := models.Comment{
		PostID:   post.ID,
		Name:     name,
		Email:    email,
		Content:  body,
		Approved: false,
	}
	if err := s.repo.Create(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// CountPending 待审核评论数
func (s *CommentService) CountPending() (int64, error) {
	return s.repo.CountPending()
}
