package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func TestAuthorizeAdminRoutes(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	cases := []struct {
		name   string
		path   string
		method string
		want   bool
	}{
		{name: "dashboard", path: "/admin", method: "GET", want: true},
		{name: "dashboard trailing slash", path: "/admin/", method: "GET", want: true},
		{name: "admin page", path: "/admin/posts", method: "GET", want: true},
		{name: "admin upload", path: "/admin/upload", method: "POST", want: true},
		{name: "create post", path: "/api/posts", method: "POST", want: true},
		{name: "update post", path: "/api/posts/12", method: "put", want: true},
		{name: "list comments", path: "/api/comments?approved=false", method: "GET", want: true},
		{name: "news link api", path: "/news-links/api/3", method: "DELETE", want: true},
		{name: "document delete", path: "/documents/report.pdf", method: "DELETE", want: true},
		{name: "unknown api write", path: "/api/unknown", method: "POST", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allow, err := svc.AuthorizeAdmin(1, true, tc.path, tc.method)
			if err != nil {
				t.Fatalf("authorize failed: %v", err)
			}
			if allow != tc.want {
				t.Fatalf("unexpected allow for %s %s: got=%v want=%v", tc.method, tc.path, allow, tc.want)
			}
		})
	}
}

func TestAuthorizeAdminRevokesRoleForNonAdmin(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	allow, err := svc.AuthorizeAdmin(7, true, "/admin/tags", "GET")
	if err != nil || !allow {
		t.Fatalf("expected admin allow, got allow=%v err=%v", allow, err)
	}

	allow, err = svc.AuthorizeAdmin(7, false, "/admin/tags", "GET")
	if err != nil {
		t.Fatalf("authorize non-admin failed: %v", err)
	}
	if allow {
		t.Fatalf("expected non-admin deny")
	}

	allow, err = svc.EnforceUser(7, "/admin/tags", "GET")
	if err != nil {
		t.Fatalf("enforce user failed: %v", err)
	}
	if allow {
		t.Fatalf("expected role to be revoked")
	}
}

func TestBootstrapRemovesStalePolicies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if _, err := svc.enforcer.AddPolicy(RoleAdmin, "/api/legacy", "POST"); err != nil {
		t.Fatalf("add stale policy failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap again failed: %v", err)
	}
	policies, err := svc.Policies(RoleAdmin)
	if err != nil {
		t.Fatalf("list policies failed: %v", err)
	}
	if len(policies) != len(BuiltinAdminPolicies()) {
		t.Fatalf("policy count want %d got %d", len(BuiltinAdminPolicies()), len(policies))
	}
	for _, p := range policies {
		if p.Object == "/api/legacy" {
			t.Fatalf("stale policy should be removed")
		}
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := map[string]string{
		"":               "/",
		"admin":          "/admin",
		"/admin/":        "/admin",
		"/":              "/",
		"/api/posts?x=1": "/api/posts",
		" /documents/a ": "/documents/a",
		"//admin//":      "/admin",
	}
	for in, want := range cases {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("NormalizeObject(%q)=%q want %q", in, got, want)
		}
	}
}
