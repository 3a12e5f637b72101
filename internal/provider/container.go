package provider

import (
	"fmt"

	"github.com/devlegal/internal/authz"
	"github.com/devlegal/internal/config"
	"github.com/devlegal/internal/render"
	"github.com/devlegal/internal/repository"
	"github.com/devlegal/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器；数据库句柄在进程启动时构造一次后显式传入
type Container struct {
	Config   *config.Config
	DB       *gorm.DB
	DemoMode bool
	Renderer *render.Renderer

	// Repositories
	UserRepo      repository.UserRepository
	PostRepo      repository.PostRepository
	CategoryRepo  repository.CategoryRepository
	TagRepo       repository.TagRepository
	CommentRepo   repository.CommentRepository
	NewsLinkRepo  repository.NewsLinkRepository
	InquiryRepo   repository.InquiryRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	CaptchaService   *service.CaptchaService
	UploadService    *service.UploadService
	PostService      *service.PostService
	CategoryService  *service.CategoryService
	TagService       *service.TagService
	CommentService   *service.CommentService
	NewsLinkService  *service.NewsLinkService
	InquiryService   *service.InquiryService
	DashboardService *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB, demoMode bool) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}

	c := &Container{
		Config:   cfg,
		DB:       db,
		DemoMode: demoMode,
		Renderer: render.NewRenderer(cfg.Templates.Dir, cfg.Server.IsProduction()),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	db := c.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.NewsLinkRepo = repository.NewNewsLinkRepository(db)
	c.InquiryRepo = repository.NewInquiryRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		return fmt.Errorf("init authz: %w", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("bootstrap builtin roles: %w", err)
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(c.Config.Session, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config.Upload)
	c.PostService = service.NewPostService(c.PostRepo, c.CategoryRepo, c.TagRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.TagService = service.NewTagService(c.TagRepo)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.PostRepo)
	c.NewsLinkService = service.NewNewsLinkService(c.NewsLinkRepo)
	c.InquiryService = service.NewInquiryService(c.InquiryRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	return nil
}
