package repository

import (
	"github.com/devlegal/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// TagRepository 标签数据访问接口
type TagRepository interface {
	List() ([]models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

type taxonomy interface {
	models.Category | models.Tag
}

// taxonomyStore 分类与标签共用的 name/slug 表访问
type taxonomyStore[T taxonomy] struct {
	db *gorm.DB
	// detach 删除前解除文章引用
	detach func(tx *gorm.DB, id uint) error
}

func (s taxonomyStore[T]) List() ([]T, error) {
	var rows []T
	if err := s.db.Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s taxonomyStore[T]) GetByID(id uint) (*T, error) {
	return firstOrNil[T](s.db, id)
}

func (s taxonomyStore[T]) GetBySlug(slug string) (*T, error) {
	return firstOrNil[T](s.db.Where("slug = ?", slug))
}

func (s taxonomyStore[T]) Create(row *T) error {
	return s.db.Create(row).Error
}

func (s taxonomyStore[T]) Update(row *T) error {
	return s.db.Save(row).Error
}

func (s taxonomyStore[T]) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if s.detach != nil {
			if err := s.detach(tx, id); err != nil {
				return err
			}
		}
		var zero T
		return tx.Delete(&zero, id).Error
	})
}

func (s taxonomyStore[T]) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := s.db.Model(new(T)).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	taxonomyStore[models.Category]
}

// NewCategoryRepository 删除分类时文章的分类置空
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{taxonomyStore[models.Category]{
		db: db,
		detach: func(tx *gorm.DB, id uint) error {
			return tx.Model(&models.Post{}).Where("category_id = ?", id).Update("category_id", nil).Error
		},
	}}
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	taxonomyStore[models.Tag]
}

// NewTagRepository 删除标签时一并清理 post_tags
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{taxonomyStore[models.Tag]{
		db: db,
		detach: func(tx *gorm.DB, id uint) error {
			return tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error
		},
	}}
}
