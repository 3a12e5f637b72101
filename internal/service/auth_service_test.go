package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devlegal/internal/config"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *models.User) {
	t.Helper()
	db := setupServiceTestDB(t)
	admin, err := models.EnsureAdmin(db, "admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	svc := NewAuthService(config.SessionConfig{Secret: "test-secret", TTLHours: 24, RefreshAfterMinutes: 10}, repository.NewUserRepository(db))
	return svc, admin
}

func TestAuthServiceLogin(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)

	user, err := svc.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != admin.ID || user.LastLoginAt == nil {
		t.Fatalf("unexpected login user: %+v", user)
	}

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("ghost", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Login("", "x"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthServiceResolveIdentity(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)

	token, claims, err := svc.IssueSession(admin.ID, admin.Username, admin.TokenVersion)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id")
	}

	identity := svc.ResolveIdentity(context.Background(), token)
	if identity == nil {
		t.Fatalf("expected identity")
	}
	if identity.UserID != admin.ID || !identity.IsAdmin || identity.TokenID != claims.ID {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if got := svc.ResolveIdentity(context.Background(), ""); got != nil {
		t.Fatalf("empty token must be anonymous")
	}
	if got := svc.ResolveIdentity(context.Background(), "garbage"); got != nil {
		t.Fatalf("invalid token must be anonymous")
	}

	other := NewAuthService(config.SessionConfig{Secret: "another-secret"}, svc.userRepo)
	if got := other.ResolveIdentity(context.Background(), token); got != nil {
		t.Fatalf("token signed with another secret must be anonymous")
	}

	ghostToken, _, err := svc.IssueSession(9999, "ghost", 0)
	if err != nil {
		t.Fatalf("issue ghost session failed: %v", err)
	}
	if got := svc.ResolveIdentity(context.Background(), ghostToken); got != nil {
		t.Fatalf("token for missing user must be anonymous")
	}
}

func TestAuthServiceNonAdminIdentity(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	hash, err := HashPassword("reader-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	reader := &models.User{Username: "reader", PasswordHash: hash}
	if err := svc.userRepo.Create(reader); err != nil {
		t.Fatalf("create reader failed: %v", err)
	}

	token, _, err := svc.IssueSession(reader.ID, reader.Username, reader.TokenVersion)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	identity := svc.ResolveIdentity(context.Background(), token)
	if identity == nil || identity.IsAdmin {
		t.Fatalf("expected authenticated non-admin identity, got %+v", identity)
	}
}

func TestAuthServiceExpiryAndRefresh(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, _, err := svc.IssueSession(admin.ID, admin.Username, admin.TokenVersion)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	identity := svc.ResolveIdentity(context.Background(), token)
	if identity == nil {
		t.Fatalf("expected identity")
	}
	if svc.NeedsRefresh(identity) {
		t.Fatalf("fresh session must not need refresh")
	}

	svc.now = func() time.Time { return issuedAt.Add(11 * time.Minute) }
	if !svc.NeedsRefresh(identity) {
		t.Fatalf("expected refresh after threshold")
	}
	refreshed, claims, err := svc.Refresh(context.Background(), identity)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed == token || !claims.ExpiresAt.Time.Equal(issuedAt.Add(11*time.Minute+24*time.Hour)) {
		t.Fatalf("unexpected refreshed session: expires=%v", claims.ExpiresAt.Time)
	}
	if claims.Version != identity.TokenVersion {
		t.Fatalf("refresh must keep token version: got %d want %d", claims.Version, identity.TokenVersion)
	}
	if got := svc.ResolveIdentity(context.Background(), refreshed); got == nil || got.UserID != admin.ID {
		t.Fatalf("refreshed token should resolve, got %+v", got)
	}

	svc.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	if got := svc.ResolveIdentity(context.Background(), token); got != nil {
		t.Fatalf("expired session must be anonymous")
	}
}

func TestAuthServiceRevokeInvalidatesIssuedTokens(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)
	ctx := context.Background()
	token, _, err := svc.IssueSession(admin.ID, admin.Username, admin.TokenVersion)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	identity, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if err := svc.Revoke(ctx, identity); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked after logout, got %v", err)
	}
	if got := svc.ResolveIdentity(ctx, token); got != nil {
		t.Fatalf("revoked token must be anonymous, got %+v", got)
	}

	user, err := svc.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login after logout failed: %v", err)
	}
	if user.TokenVersion != admin.TokenVersion+1 {
		t.Fatalf("logout should bump token version, got %d", user.TokenVersion)
	}
	fresh, _, err := svc.IssueSession(user.ID, user.Username, user.TokenVersion)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	if got := svc.ResolveIdentity(ctx, fresh); got == nil {
		t.Fatalf("new session after logout should resolve")
	}
}

func TestAuthServiceAuthenticateErrors(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	ctx := context.Background()
	if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for empty token, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "garbage"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for garbage token, got %v", err)
	}
	ghost, _, err := svc.IssueSession(9999, "ghost", 0)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, ghost); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for missing user, got %v", err)
	}
}

func TestAuthServiceRevokeNilIdentity(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if err := svc.Revoke(context.Background(), nil); err != nil {
		t.Fatalf("revoke nil identity failed: %v", err)
	}
}
