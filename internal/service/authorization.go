package service

import (
	"fmt"

	casbinmodel "github.com/casbin/casbin/v2/model"

	"github.com/casbin/casbin/v2"

	appmodel "github.com/babo072/my-shopping-mall/internal/model"
)

// rbacModel matches a caller's role against role-scoped policies. Subjects
// are role names, not user ids; the role is re-resolved from the profiles
// table on every privileged request.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Resources and actions used in policies and route wiring.
const (
	ResourceProducts  = "products"
	ResourceOrders    = "orders"
	ResourceOrderMemo = "order_memo"

	ActionRead  = "read"
	ActionWrite = "write"
)

// AuthorizationService answers role-based permission checks.
type AuthorizationService struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizationService builds the RBAC enforcer with the storefront's
// fixed policy set: admin is the sole role with write access to the catalog
// and to order administration.
func NewAuthorizationService() (*AuthorizationService, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse RBAC model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("initialize RBAC enforcer: %w", err)
	}

	policies := [][]string{
		{appmodel.RoleAdmin, ResourceProducts, ActionWrite},
		{appmodel.RoleAdmin, ResourceOrders, ActionRead},
		{appmodel.RoleAdmin, ResourceOrders, ActionWrite},
		{appmodel.RoleAdmin, ResourceOrderMemo, ActionWrite},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("add policy %v: %w", p, err)
		}
	}

	return &AuthorizationService{enforcer: enforcer}, nil
}

// CheckPermission reports whether the given role may perform action on
// resource.
func (s *AuthorizationService) CheckPermission(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}
