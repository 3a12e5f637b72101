package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	userSubjectFmt  = "user:%d"

	// RoleAdmin 站点管理员角色
	RoleAdmin = "role:admin"
)

// obj 使用 keyMatch2，策略中的 :id 与 * 可匹配 gin 的路由模板和真实路径
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var errUnavailable = errors.New("authz service unavailable")

// Policy 一条授权策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service 管理员闸门的路由级授权；策略持久化在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务并加载已持久化的策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

// Enforce 判定主体能否对资源执行动作
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, errUnavailable
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceUser 按用户主体判定
func (s *Service) EnforceUser(userID uint, obj, act string) (bool, error) {
	return s.Enforce(SubjectForUser(userID), obj, act)
}

// AuthorizeAdmin 以用户表的 is_admin 为准同步角色后判定
func (s *Service) AuthorizeAdmin(userID uint, isAdmin bool, obj, act string) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	if err := s.SyncUserRole(userID, isAdmin); err != nil {
		return false, err
	}
	if !isAdmin {
		return false, nil
	}
	return s.EnforceUser(userID, obj, act)
}

// SyncUserRole 授予或撤销用户的管理员角色
func (s *Service) SyncUserRole(userID uint, isAdmin bool) error {
	if userID == 0 {
		return errors.New("user id is required")
	}
	if s == nil || s.enforcer == nil {
		return errUnavailable
	}
	subject := SubjectForUser(userID)
	has, err := s.enforcer.HasGroupingPolicy(subject, RoleAdmin)
	if err != nil {
		return fmt.Errorf("check user role: %w", err)
	}
	switch {
	case isAdmin && !has:
		if _, err := s.enforcer.AddGroupingPolicy(subject, RoleAdmin); err != nil {
			return fmt.Errorf("assign admin role: %w", err)
		}
	case !isAdmin && has:
		if _, err := s.enforcer.RemoveGroupingPolicy(subject, RoleAdmin); err != nil {
			return fmt.Errorf("revoke admin role: %w", err)
		}
	}
	return nil
}

// Policies 角色当前持有的策略
func (s *Service) Policies(role string) ([]Policy, error) {
	if s == nil || s.enforcer == nil {
		return nil, errUnavailable
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, strings.TrimSpace(role))
	if err != nil {
		return nil, fmt.Errorf("get role policies: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{Subject: rule[0], Object: rule[1], Action: rule[2]})
	}
	return policies, nil
}

// SubjectForUser 用户主体标识
func SubjectForUser(userID uint) string {
	return fmt.Sprintf(userSubjectFmt, userID)
}

// NormalizeObject 去掉查询串与末尾斜杠，保证以 / 开头
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if idx := strings.IndexAny(normalized, "?#"); idx >= 0 {
		normalized = normalized[:idx]
	}
	normalized = "/" + strings.Trim(normalized, "/")
	return normalized
}

// NormalizeAction HTTP 方法统一大写
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
