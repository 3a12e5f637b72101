package repository

import (
	"github.com/devlegal/internal/models"

	"gorm.io/gorm"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, int64, error)
	GetBySlug(slug string, onlyPublished bool) (*models.Post, error)
	GetByID(id uint) (*models.Post, error)
	Create(post *models.Post, tagIDs []uint) error
	Update(id uint, fields map[string]interface{}, tagIDs *[]uint) error
	Delete(id uint) error
	IncrementViews(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// List 文章列表（附带分类与标签）
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	var posts []models.Post
	query := r.db.Model(&models.Post{})

	if filter.Published != nil {
		query = query.Where("posts.published = ?", *filter.Published)
	}
	if filter.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filter.CategoryID)
	}
	if filter.TagID != nil {
		sub := r.db.Model(&models.PostTag{}).Select("post_id").Where("tag_id = ?", *filter.TagID)
		query = query.Where("posts.id IN (?)", sub)
	}
	if clause, args, ok := keywordMatch(r.db, filter.Search, "posts.title", "posts.content"); ok {
		query = query.Where(clause, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "posts.created_at DESC, posts.id DESC"
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Category").Preload("Tags").Order(orderBy).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetBySlug 根据 slug 获取文章
func (r *GormPostRepository) GetBySlug(slug string, onlyPublished bool) (*models.Post, error) {
	query := r.db.Preload("Category").Preload("Tags").Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("published = ?", true)
	}
	return firstOrNil[models.Post](query)
}

// GetByID 根据 ID 获取文章
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	return firstOrNil[models.Post](r.db.Preload("Category").Preload("Tags"), id)
}

// Create 创建文章并写入标签关联
func (r *GormPostRepository) Create(post *models.Post, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Tags").Create(post).Error; err != nil {
			return err
		}
		// 带 default:true 的零值字段会被 GORM 忽略，需要显式写回
		if !post.CommentsEnabled {
			if err := tx.Model(post).UpdateColumn("comments_enabled", false).Error; err != nil {
				return err
			}
		}
		return insertPostTags(tx, post.ID, tagIDs)
	})
}

// Update 局部更新文章；tagIDs 非 nil 时整体替换标签关联（先删后插）
func (r *GormPostRepository) Update(id uint, fields map[string]interface{}, tagIDs *[]uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&models.Post{ID: id}).Updates(fields).Error; err != nil {
				return err
			}
		}
		if tagIDs == nil {
			return nil
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return insertPostTags(tx, id, *tagIDs)
	})
}

// Delete 删除文章及其标签关联与评论
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// IncrementViews 原子递增浏览次数
func (r *GormPostRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// CountBySlug 统计 slug 数量
func (r *GormPostRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// insertPostTags 写入存在的标签关联，忽略重复与无效 ID
func insertPostTags(tx *gorm.DB, postID uint, tagIDs []uint) error {
	ids := uniqueIDs(tagIDs)
	if len(ids) == 0 {
		return nil
	}
	var existing []uint
	if err := tx.Model(&models.Tag{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}
	rows := make([]models.PostTag, 0, len(existing))
	for _, tagID := range existing {
		rows = append(rows, models.PostTag{PostID: postID, TagID: tagID})
	}
	return tx.Create(&rows).Error
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
