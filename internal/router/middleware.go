package router

import (
	"net/http"
	"strings"

	"github.com/devlegal/internal/authz"
	"github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/logger"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

const loginPath = "/admin/login"

// IdentityMiddleware 解析会话身份；失败一律视为匿名，不中断请求
// 来自 Cookie 的会话在超过刷新阈值后重新签发（滑动过期）
func IdentityMiddleware(authService *service.AuthService, cookie shared.SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			c.Next()
			return
		}
		token, fromCookie := cookie.TokenFromRequest(c)
		identity := authService.ResolveIdentity(c.Request.Context(), token)
		if identity == nil {
			c.Next()
			return
		}

		if fromCookie && authService.NeedsRefresh(identity) {
			refreshed, claims, err := authService.Refresh(c.Request.Context(), identity)
			if err != nil {
				logger.Warnw("session_refresh_failed", "user_id", identity.UserID, "error", err)
			} else {
				cookie.Write(c, refreshed, authService.SessionTTL())
				identity.TokenID = claims.ID
				identity.IssuedAt = claims.IssuedAt.Time
				identity.ExpiresAt = claims.ExpiresAt.Time
			}
		}

		shared.SetIdentity(c, identity)
		c.Next()
	}
}

// RequireAuthenticated 要求已登录
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if shared.CurrentIdentity(c) == nil {
			denyRequest(c, response.CodeUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin 管理员闸门：is_admin 标识之后再按路由策略授权
func RequireAdmin(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := shared.CurrentIdentity(c)
		if identity == nil || !identity.IsAdmin {
			denyRequest(c, response.CodeForbidden, "Admin access required")
			return
		}
		if authzService == nil {
			c.Next()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := authzService.AuthorizeAdmin(identity.UserID, identity.IsAdmin, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"user_id", identity.UserID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			denyRequest(c, response.CodeForbidden, "Admin access required")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"user_id", identity.UserID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			denyRequest(c, response.CodeForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

// denyRequest JSON 路径返回错误体，页面路径跳转登录
func denyRequest(c *gin.Context, code int, msg string) {
	if shared.WantsJSON(c) {
		response.Abort(c, code, msg)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
	c.Abort()
}
