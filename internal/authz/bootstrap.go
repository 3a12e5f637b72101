package authz

import (
	"errors"
	"fmt"
)

// adminPolicies 管理员角色可访问的路由；:id 与 * 按 keyMatch2 匹配
var adminPolicies = []Policy{
	{Object: "/admin", Action: "GET"},
	{Object: "/admin/*", Action: "*"},
	{Object: "/api/posts", Action: "POST"},
	{Object: "/api/posts/:id", Action: "PUT"},
	{Object: "/api/posts/:id", Action: "DELETE"},
	{Object: "/api/categories", Action: "POST"},
	{Object: "/api/categories/:id", Action: "PUT"},
	{Object: "/api/categories/:id", Action: "DELETE"},
	{Object: "/api/tags", Action: "POST"},
	{Object: "/api/tags/:id", Action: "PUT"},
	{Object: "/api/tags/:id", Action: "DELETE"},
	{Object: "/api/toggle-comment", Action: "POST"},
	{Object: "/api/comments", Action: "GET"},
	{Object: "/api/comments/:id", Action: "PUT"},
	{Object: "/api/comments/:id", Action: "DELETE"},
	{Object: "/news-links", Action: "GET"},
	{Object: "/news-links/*", Action: "*"},
	{Object: "/documents", Action: "GET"},
	{Object: "/documents/*", Action: "*"},
}

// BuiltinAdminPolicies 返回管理员角色的内置策略副本
func BuiltinAdminPolicies() []Policy {
	out := make([]Policy, len(adminPolicies))
	for i, p := range adminPolicies {
		out[i] = Policy{Subject: RoleAdmin, Object: NormalizeObject(p.Object), Action: NormalizeAction(p.Action)}
	}
	return out
}

// BootstrapBuiltinRoles 将管理员角色的策略与内置列表对齐：缺的补上，多余的删除
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return errUnavailable
	}
	want := BuiltinAdminPolicies()
	wanted := make(map[Policy]struct{}, len(want))
	for _, p := range want {
		if p.Action == "" {
			return errors.New("builtin policy action is required")
		}
		wanted[p] = struct{}{}
		if _, err := s.enforcer.AddPolicy(p.Subject, p.Object, p.Action); err != nil {
			return fmt.Errorf("add builtin policy %s %s: %w", p.Action, p.Object, err)
		}
	}

	current, err := s.Policies(RoleAdmin)
	if err != nil {
		return err
	}
	for _, p := range current {
		if _, ok := wanted[p]; ok {
			continue
		}
		if _, err := s.enforcer.RemovePolicy(p.Subject, p.Object, p.Action); err != nil {
			return fmt.Errorf("remove stale policy %s %s: %w", p.Action, p.Object, err)
		}
	}
	return nil
}
