package app

import (
	"context"

	"github.com/devlegal/internal/cache"

	"gorm.io/gorm"
)

// storeCloser 在退出时释放数据库与 Redis 连接
type storeCloser struct {
	db *gorm.DB
}

func newStoreCloser(db *gorm.DB) *storeCloser {
	return &storeCloser{db: db}
}

// Name 服务名称
func (s *storeCloser) Name() string {
	return "store"
}

// Start 等待退出信号
func (s *storeCloser) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Stop 关闭连接
func (s *storeCloser) Stop(ctx context.Context) error {
	if err := cache.Close(); err != nil {
		return err
	}
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
