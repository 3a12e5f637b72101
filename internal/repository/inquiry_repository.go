package repository

import (
	"time"

	"github.com/devlegal/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InquiryRepository 联系留言与订阅数据访问接口
type InquiryRepository interface {
	CreateContact(message *models.ContactMessage) error
	UpsertSubscriber(subscriber *models.Subscriber) error
}

// GormInquiryRepository GORM 实现
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository 创建仓库
func NewInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

// CreateContact 保存联系留言
func (r *GormInquiryRepository) CreateContact(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// UpsertSubscriber 按邮箱幂等写入订阅者，重复订阅时刷新资料
func (r *GormInquiryRepository) UpsertSubscriber(subscriber *models.Subscriber) error {
	subscriber.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "role", "updated_at"}),
	}).Create(subscriber).Error
}
