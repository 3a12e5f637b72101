package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/devlegal/internal/authz"
	"github.com/devlegal/internal/cache"
	"github.com/devlegal/internal/config"
	adminhandlers "github.com/devlegal/internal/http/handlers/admin"
	publichandlers "github.com/devlegal/internal/http/handlers/public"
	"github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/logger"
	"github.com/devlegal/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Log.ToLoggerOptions(cfg.Server.IsProduction()))
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	cookie := shared.SessionCookie{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Server.IsProduction(),
	}

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "devlegal"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.RateLimit.Login.WindowSeconds,
		MaxRequests:   cfg.RateLimit.Login.Limit,
		Message:       "Too many login attempts, please try again in %d seconds",
	}
	if !cfg.RateLimit.Login.Enabled {
		loginRule.MaxRequests = 0
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(IdentityMiddleware(c.AuthService, cookie))

	// 静态资源与上传文件
	r.Static("/static", cfg.Static.Dir)
	r.Static("/uploads", cfg.Upload.Dir)
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "demo_mode": c.DemoMode})
	})

	// 公开页面
	r.GET("/", publicHandler.Home)
	r.GET("/about", publicHandler.About)
	r.GET("/services", publicHandler.Services)
	r.GET("/contact", publicHandler.Contact)
	blog := r.Group("/blog")
	{
		blog.GET("", publicHandler.BlogIndex)
		blog.GET("/post/:slug", publicHandler.BlogPost)
		blog.POST("/post/:slug/comment", publicHandler.SubmitComment)
		blog.GET("/category/:slug", publicHandler.BlogCategory)
		blog.GET("/tag/:slug", publicHandler.BlogTag)
		blog.GET("/search", publicHandler.BlogSearch)
	}

	// 公开 JSON 接口
	api := r.Group("/api")
	{
		api.GET("/posts", publicHandler.ListPosts)
		api.GET("/posts/:id", publicHandler.GetPost)
		api.GET("/categories", publicHandler.ListCategories)
		api.GET("/tags", publicHandler.ListTags)
		api.GET("/captcha", publicHandler.GetImageCaptcha)
		api.POST("/contact", publicHandler.SubmitContact)
		api.POST("/subscribe", publicHandler.Subscribe)
	}

	// 后台登录（无需鉴权）
	r.GET("/admin/login", adminHandler.LoginPage)
	r.POST("/admin/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndField("username")), adminHandler.Login)
	r.POST("/admin/logout", adminHandler.Logout)
	r.GET("/admin/logout", adminHandler.Logout)

	// 管理员接口
	gate := registerAdminRoutes(r, RequireAdmin(c.AuthzService), adminHandler)
	for _, item := range uncoveredAdminRoutes(c.AuthzService, gate.routes) {
		logger.Warnw("admin_route_policy_missing", "method", item.Method, "path", item.Path)
	}

	r.NoRoute(publicHandler.NotFound)
	return r
}

// registerAdminRoutes 注册管理员闸门后的页面与写接口
func registerAdminRoutes(engine *gin.Engine, require gin.HandlerFunc, h *adminhandlers.Handler) *adminGate {
	gate := newAdminGate(engine, require)
	gate.handle(http.MethodGet, "/admin", h.Dashboard)
	gate.handle(http.MethodGet, "/admin/posts", h.PostsPage)
	gate.handle(http.MethodGet, "/admin/categories", h.CategoriesPage)
	gate.handle(http.MethodGet, "/admin/tags", h.TagsPage)
	gate.handle(http.MethodGet, "/admin/comments", h.CommentsPage)
	gate.handle(http.MethodPost, "/admin/upload", h.UploadFile)

	gate.handle(http.MethodPost, "/api/posts", h.CreatePost)
	gate.handle(http.MethodPut, "/api/posts/:id", h.UpdatePost)
	gate.handle(http.MethodDelete, "/api/posts/:id", h.DeletePost)
	gate.handle(http.MethodPost, "/api/toggle-comment", h.ToggleComment)
	gate.handle(http.MethodPost, "/api/categories", h.CreateCategory)
	gate.handle(http.MethodPut, "/api/categories/:id", h.UpdateCategory)
	gate.handle(http.MethodDelete, "/api/categories/:id", h.DeleteCategory)
	gate.handle(http.MethodPost, "/api/tags", h.CreateTag)
	gate.handle(http.MethodPut, "/api/tags/:id", h.UpdateTag)
	gate.handle(http.MethodDelete, "/api/tags/:id", h.DeleteTag)
	gate.handle(http.MethodGet, "/api/comments", h.ListComments)
	gate.handle(http.MethodPut, "/api/comments/:id", h.UpdateComment)
	gate.handle(http.MethodDelete, "/api/comments/:id", h.DeleteComment)

	gate.handle(http.MethodGet, "/news-links", h.NewsLinksPage)
	gate.handle(http.MethodGet, "/news-links/api", h.ListNewsLinks)
	gate.handle(http.MethodPost, "/news-links/api", h.CreateNewsLink)
	gate.handle(http.MethodPut, "/news-links/api/:id", h.UpdateNewsLink)
	gate.handle(http.MethodDelete, "/news-links/api/:id", h.DeleteNewsLink)

	gate.handle(http.MethodGet, "/documents", h.DocumentsPage)
	gate.handle(http.MethodGet, "/documents/api", h.ListDocuments)
	gate.handle(http.MethodPost, "/documents/upload", h.UploadDocument)
	gate.handle(http.MethodDelete, "/documents/:filename", h.DeleteDocument)
	return gate
}

// adminRoute 受管理员闸门保护的路由
type adminRoute struct {
	Method string
	Path   string
}

// adminGate 注册管理员路由并记录路由目录
type adminGate struct {
	engine  *gin.Engine
	require gin.HandlerFunc
	routes  []adminRoute
}

func newAdminGate(engine *gin.Engine, require gin.HandlerFunc) *adminGate {
	return &adminGate{engine: engine, require: require}
}

// handle 先要求登录（匿名 401），再校验管理员权限（非管理员 403）
func (g *adminGate) handle(method, path string, handler gin.HandlerFunc) {
	g.engine.Handle(method, path, RequireAuthenticated(), g.require, handler)
	g.routes = append(g.routes, adminRoute{Method: method, Path: path})
}

// uncoveredAdminRoutes 管理员角色策略未覆盖的路由
func uncoveredAdminRoutes(authzService *authz.Service, routes []adminRoute) []adminRoute {
	missing := make([]adminRoute, 0)
	if authzService == nil {
		return missing
	}
	for _, item := range routes {
		allowed, err := authzService.Enforce(authz.RoleAdmin, item.Path, item.Method)
		if err != nil || !allowed {
			missing = append(missing, item)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Path == missing[j].Path {
			return missing[i].Method < missing[j].Method
		}
		return missing[i].Path < missing[j].Path
	})
	return missing
}
