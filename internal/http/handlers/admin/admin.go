package admin

import (
	"errors"
	"net/http"
	"strings"

	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	dashboardPath = "/admin"
	loginPath     = "/admin/login"
	// multipartOverhead 表单边界等额外字节
	multipartOverhead = 1 << 20
)

// LoginRequest 后台登录请求
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	// BearerToken 为 true 时在响应中返回令牌，供非浏览器客户端使用 Authorization 头
	BearerToken bool `json:"bearer_token" form:"bearer_token"`
}

// LoginPage 登录页；已登录管理员直接进入后台
func (h *Handler) LoginPage(c *gin.Context) {
	if handlershared.IsAdmin(c) {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	h.renderPage(c, handlershared.StaticView{
		Layout:   handlershared.NewLayout(c, "Admin Login"),
		Template: templateLogin,
	})
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Username and password required")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		response.BadRequest(c, "Username and password required")
		return
	}

	user, err := h.AuthService.Login(username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			requestLog(c).Infow("admin_login_failed", "username", username)
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		respondError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	token, claims, err := h.AuthService.IssueSession(user.ID, user.Username, user.TokenVersion)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}
	h.sessionCookie().Write(c, token, h.AuthService.SessionTTL())
	requestLog(c).Infow("admin_login_succeeded", "user_id", user.ID)

	payload := gin.H{
		"success":  true,
		"redirect": dashboardPath,
	}
	if req.BearerToken {
		payload["token"] = token
		payload["expires_at"] = claims.ExpiresAt.Time
	}
	response.OK(c, payload)
}

// Logout 退出登录：吊销会话并清理 Cookie
func (h *Handler) Logout(c *gin.Context) {
	if identity := currentIdentity(c); identity != nil {
		if err := h.AuthService.Revoke(c.Request.Context(), identity); err != nil {
			requestLog(c).Warnw("admin_logout_revoke_failed", "user_id", identity.UserID, "error", err)
		}
	}
	h.sessionCookie().Clear(c)
	if handlershared.WantsJSON(c) {
		response.Success(c)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}

// UploadFile 编辑器通用上传（图片与文档）
func (h *Handler) UploadFile(c *gin.Context) {
	stored, ok := h.receiveUpload(c, "file", service.UploadKindGeneral)
	if !ok {
		return
	}
	response.OK(c, gin.H{
		"success":      true,
		"filename":     stored.Name,
		"originalName": stored.OriginalName,
		"size":         stored.Size,
		"url":          stored.URL,
	})
}

// receiveUpload 读取并保存上传文件；失败时已写出响应
func (h *Handler) receiveUpload(c *gin.Context, field string, kind service.UploadKind) (*service.StoredFile, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.UploadService.MaxBytes()+multipartOverhead)
	fileHeader, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(c, service.ErrFileTooLarge.Error())
			return nil, false
		}
		response.BadRequest(c, service.ErrFileRequired.Error())
		return nil, false
	}
	stored, err := h.UploadService.Save(fileHeader, field, kind)
	if err != nil {
		respondServiceError(c, err, "Upload failed")
		return nil, false
	}
	requestLog(c).Infow("file_uploaded", "name", stored.Name, "size", stored.Size)
	return stored, true
}
