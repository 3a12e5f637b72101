package repository

import (
	"github.com/devlegal/internal/models"

	"gorm.io/gorm"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	List(filter CommentListFilter) ([]models.Comment, error)
	ListVisibleForPost(postID uint) ([]models.Comment, error)
	GetByID(id uint) (*models.Comment, error)
	Create(comment *models.Comment) error
	SetApproved(id uint, approved bool) error
	Delete(id uint) error
	CountPending() (int64, error)
}

// GormCommentRepository GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func preloadCommentPost(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "slug")
}

// List 后台评论列表（附带所属文章的 id/title/slug）
func (r *GormCommentRepository) List(filter CommentListFilter) ([]models.Comment, error) {
	query := r.db.Model(&models.Comment{})
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	if filter.PostID != nil {
		query = query.Where("post_id = ?", *filter.PostID)
	}

	var comments []models.Comment
	if err := query.Preload("Post", preloadCommentPost).Order("created_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ListVisibleForPost 前台可见评论（已审核，按时间正序）
func (r *GormCommentRepository) ListVisibleForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ? AND approved = ?", postID, true).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByID 根据 ID 获取评论
func (r *GormCommentRepository) GetByID(id uint) (*models.Comment, error) {
	return firstOrNil[models.Comment](r.db.Preload("Post", preloadCommentPost), id)
}

// Create 创建评论
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit("Post").Create(comment).Error
}

// SetApproved 更新审核状态
func (r *GormCommentRepository) SetApproved(id uint, approved bool) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Update("approved", approved).Error
}

// Delete 删除评论
func (r *GormCommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// CountPending 待审核评论数
func (r *GormCommentRepository) CountPending() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("approved = ?", false).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
