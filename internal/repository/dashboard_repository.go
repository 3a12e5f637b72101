package repository

import (
	"github.com/devlegal/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 后台概览数据访问接口
type DashboardRepository interface {
	Stats() (DashboardStats, error)
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// Stats 汇总文章、待审评论、新闻线索与订阅数量
func (r *GormDashboardRepository) Stats() (DashboardStats, error) {
	var stats DashboardStats
	counters := []struct {
		model interface{}
		where string
		args  []interface{}
		dest  *int64
	}{
		{model: &models.Post{}, dest: &stats.Posts},
		{model: &models.Post{}, where: "published = ?", args: []interface{}{true}, dest: &stats.PublishedPosts},
		{model: &models.Comment{}, where: "approved = ?", args: []interface{}{false}, dest: &stats.PendingComments},
		{model: &models.NewsLink{}, dest: &stats.NewsLinks},
		{model: &models.Subscriber{}, dest: &stats.Subscribers},
	}
	for _, c := range counters {
		query := r.db.Model(c.model)
		if c.where != "" {
			query = query.Where(c.where, c.args...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return DashboardStats{}, err
		}
	}
	return stats, nil
}
