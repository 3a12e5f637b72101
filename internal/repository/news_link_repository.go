package repository

import (
	"github.com/devlegal/internal/models"

	"gorm.io/gorm"
)

// NewsLinkRepository 新闻线索数据访问接口
type NewsLinkRepository interface {
	List() ([]models.NewsLink, error)
	GetByID(id uint) (*models.NewsLink, error)
	Create(link *models.NewsLink) error
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

// GormNewsLinkRepository GORM 实现
type GormNewsLinkRepository struct {
	db *gorm.DB
}

// NewNewsLinkRepository 创建新闻线索仓库
func NewNewsLinkRepository(db *gorm.DB) *GormNewsLinkRepository {
	return &GormNewsLinkRepository{db: db}
}

// List 列表（按收录日期倒序）
func (r *GormNewsLinkRepository) List() ([]models.NewsLink, error) {
	var links []models.NewsLink
	if err := r.db.Order("date_fetched DESC, id DESC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// GetByID 根据 ID 获取
func (r *GormNewsLinkRepository) GetByID(id uint) (*models.NewsLink, error) {
	return firstOrNil[models.NewsLink](r.db, id)
}

// Create 创建
func (r *GormNewsLinkRepository) Create(link *models.NewsLink) error {
	return r.db.Create(link).Error
}

// Update 局部更新
func (r *GormNewsLinkRepository) Update(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.NewsLink{ID: id}).Updates(fields).Error
}

// Delete 删除
func (r *GormNewsLinkRepository) Delete(id uint) error {
	return r.db.Delete(&models.NewsLink{}, id).Error
}
