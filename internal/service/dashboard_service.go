package service

import "github.com/devlegal/internal/repository"

// DashboardService 后台概览服务
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Stats 获取概览统计
func (s *DashboardService) Stats() (repository.DashboardStats, error) {
	return s.repo.Stats()
}
