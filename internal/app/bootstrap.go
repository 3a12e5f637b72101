package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/devlegal/internal/cache"
	"github.com/devlegal/internal/config"
	"github.com/devlegal/internal/logger"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/provider"
	"github.com/devlegal/internal/router"

	"gorm.io/gorm"
)

// OpenStore 打开内容存储并完成迁移与管理员初始化
// 未配置或连接失败时回退到内存演示库，返回 demoMode=true
func OpenStore(cfg *config.Config) (*gorm.DB, bool, error) {
	if cfg == nil {
		return nil, false, errors.New("config is nil")
	}

	db, demoMode := openConfiguredStore(cfg)
	if db == nil {
		demoDB, err := models.OpenDemoDB()
		if err != nil {
			return nil, false, fmt.Errorf("open demo store: %w", err)
		}
		db = demoDB
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, demoMode, fmt.Errorf("migrate store: %w", err)
	}
	bootstrapAdmin(db, cfg.Admin, demoMode)
	return db, demoMode, nil
}

// bootstrapAdmin 演示库使用默认凭据；真实存储仅在没有任何管理员且显式配置了密码时创建
func bootstrapAdmin(db *gorm.DB, admin config.AdminConfig, demoMode bool) {
	if demoMode {
		username, password := admin.DemoCredentials()
		if _, err := models.EnsureAdmin(db, username, password); err != nil {
			logger.Warnw("ensure_admin_failed", "error", err)
			return
		}
		if password == config.DemoAdminPassword {
			logger.Warnw("demo_admin_default_password", "username", username)
		}
		return
	}

	exists, err := models.HasAdmin(db)
	if err != nil {
		logger.Warnw("ensure_admin_failed", "error", err)
		return
	}
	if exists {
		return
	}
	if admin.Password == "" {
		logger.Warnw("admin_bootstrap_skipped", "reason", "ADMIN_PASSWORD not set")
		return
	}
	if _, err := models.EnsureAdmin(db, admin.Username, admin.Password); err != nil {
		logger.Warnw("ensure_admin_failed", "error", err)
	}
}

func openConfiguredStore(cfg *config.Config) (*gorm.DB, bool) {
	driver, dsn, err := cfg.ResolveDatabase()
	if err != nil {
		logger.Warnw("database_demo_mode", "reason", err.Error())
		return nil, true
	}
	db, err := models.OpenDB(driver, dsn, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	})
	if err != nil {
		logger.Errorw("database_connect_failed", "driver", driver, "error", err)
		logger.Warnw("database_demo_mode", "reason", "store unreachable")
		return nil, true
	}
	logger.Infow("database_connected", "driver", driver)
	return db, false
}

// BuildRunner 打开存储与缓存，组装 HTTP 服务
func BuildRunner(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	db, demoMode, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("redis_init_failed", "error", err)
	}

	container, err := provider.NewContainer(cfg, db, demoMode)
	if err != nil {
		return nil, err
	}
	engine := router.SetupRouter(cfg, container)
	return NewRunner(NewHTTPService(cfg.Server.Addr(), engine), newStoreCloser(db)), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return err
	}

	if opts.Mode == ModeMigrate {
		return migrateOnly(opts)
	}
	ephemeral, err := opts.Config.PrepareSessionSecret()
	if err != nil {
		return err
	}
	if ephemeral {
		opts.Logger.Warnw("session_secret_ephemeral", "reason", "SECRET_KEY not set; sessions end on restart")
	}
	runner, err := BuildRunner(opts.Config)
	if err != nil {
		return err
	}
	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr())
	return RunWithOptions(runner, opts)
}

func migrateOnly(opts Options) error {
	db, demoMode, err := OpenStore(opts.Config)
	if err != nil {
		return err
	}
	opts.Logger.Infow("migrate_done", "demo_mode", demoMode)
	return newStoreCloser(db).Stop(context.Background())
}
