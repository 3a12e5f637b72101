package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/devlegal/internal/cache"
	"github.com/devlegal/internal/config"
	"github.com/devlegal/internal/logger"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultSessionTTL          = 24 * time.Hour
	defaultSessionRefreshAfter = 10 * time.Minute
)

// AuthService 登录与会话服务
type AuthService struct {
	cfg      config.SessionConfig
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg config.SessionConfig, userRepo repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, now: time.Now}
}

// SessionClaims 会话令牌声明
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Version  uint64 `json:"ver"`
	jwt.RegisteredClaims
}

// Identity 当前请求的身份
type Identity struct {
	UserID       uint
	Username     string
	IsAdmin      bool
	TokenID      string
	TokenVersion uint64
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// SessionTTL 会话有效期
func (s *AuthService) SessionTTL() time.Duration {
	if s.cfg.TTLHours <= 0 {
		return defaultSessionTTL
	}
	return time.Duration(s.cfg.TTLHours) * time.Hour
}

func (s *AuthService) refreshAfter() time.Duration {
	if s.cfg.RefreshAfterMinutes <= 0 {
		return defaultSessionRefreshAfter
	}
	return time.Duration(s.cfg.RefreshAfterMinutes) * time.Minute
}

// Login 用户名密码登录
func (s *AuthService) Login(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, newValidationError("Username and password required")
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		logger.Warnw("user_touch_last_login_failed", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}
	snapshot := cache.NewIdentitySnapshot(user.ID, user.Username, user.IsAdmin, user.TokenVersion)
	if err := cache.StoreIdentitySnapshot(context.Background(), snapshot); err != nil {
		logger.Warnw("identity_snapshot_cache_failed", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// IssueSession 签发会话令牌，version 取用户当前的令牌版本
func (s *AuthService) IssueSession(userID uint, username string, version uint64) (string, *SessionClaims, error) {
	now := s.now()
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Version:  version,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.SessionTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// ParseSession 解析会话令牌
func (s *AuthService) ParseSession(tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Revoke 吊销会话：递增用户令牌版本使已签发令牌全部失效，启用 Redis 时同时记录 jti
func (s *AuthService) Revoke(ctx context.Context, identity *Identity) error {
	if identity == nil || identity.UserID == 0 {
		return nil
	}
	if err := s.userRepo.BumpTokenVersion(identity.UserID); err != nil {
		return err
	}
	if err := cache.DropIdentitySnapshot(ctx, identity.UserID); err != nil {
		logger.Warnw("identity_snapshot_drop_failed", "user_id", identity.UserID, "error", err)
	}
	if identity.TokenID == "" {
		return nil
	}
	return cache.RevokeSession(ctx, identity.TokenID, identity.ExpiresAt.Sub(s.now()))
}

// Authenticate 校验令牌并加载身份
// 令牌无效或用户不存在返回 ErrInvalidSession，已登出或已续期的令牌返回 ErrSessionRevoked
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidSession
	}
	claims, err := s.ParseSession(tokenString)
	if err != nil {
		return nil, err
	}
	revoked, err := cache.IsSessionRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	identity := &Identity{
		UserID:       claims.UserID,
		Username:     claims.Username,
		TokenID:      claims.ID,
		TokenVersion: claims.Version,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	if snapshot, ok, err := cache.LoadIdentitySnapshot(ctx, claims.UserID); err == nil && ok {
		if snapshot.TokenVersion != claims.Version {
			return nil, ErrSessionRevoked
		}
		identity.Username = snapshot.Username
		identity.IsAdmin = snapshot.IsAdmin
		return identity, nil
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidSession
	}
	if user.TokenVersion != claims.Version {
		return nil, ErrSessionRevoked
	}
	identity.Username = user.Username
	identity.IsAdmin = user.IsAdmin

	snapshot := cache.NewIdentitySnapshot(user.ID, user.Username, user.IsAdmin, user.TokenVersion)
	if err := cache.StoreIdentitySnapshot(ctx, snapshot); err != nil {
		logger.Warnw("identity_snapshot_cache_failed", "user_id", user.ID, "error", err)
	}
	return identity, nil
}

// ResolveIdentity 解析令牌得到身份；任何失败都视为匿名，不返回错误
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenString string) *Identity {
	identity, err := s.Authenticate(ctx, tokenString)
	if err != nil {
		if !errors.Is(err, ErrInvalidSession) && !errors.Is(err, ErrSessionRevoked) {
			logger.Warnw("session_resolve_failed", "error", err)
		}
		return nil
	}
	return identity
}

// NeedsRefresh 会话签发超过刷新阈值时需要续期（滑动过期）
func (s *AuthService) NeedsRefresh(identity *Identity) bool {
	if identity == nil || identity.IssuedAt.IsZero() {
		return false
	}
	return s.now().Sub(identity.IssuedAt) >= s.refreshAfter()
}

// Refresh 续期会话：签发同版本的新令牌，并吊销旧令牌的 jti
func (s *AuthService) Refresh(ctx context.Context, identity *Identity) (string, *SessionClaims, error) {
	if identity == nil {
		return "", nil, ErrInvalidSession
	}
	if identity.TokenID != "" {
		if err := cache.RevokeSession(ctx, identity.TokenID, identity.ExpiresAt.Sub(s.now())); err != nil {
			return "", nil, err
		}
	}
	return s.IssueSession(identity.UserID, identity.Username, identity.TokenVersion)
}
