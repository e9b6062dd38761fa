// Package access decides which portal roles may call which HTTP routes.
package access

import (
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Role is a portal caller role.
type Role string

// Role values. Each role inherits every permission of the one before it.
const (
	RoleAnonymous Role = "anonymous"
	RoleMember    Role = "member"
	RoleStaff     Role = "staff"
)

// ErrUnknownKey is returned when a caller presents an API key that is not configured.
var ErrUnknownKey = errors.New("unknown api key")

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
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

const (
	anyMethod = "^(GET|HEAD|POST|PUT|PATCH|DELETE|OPTIONS)$"
	readOnly  = "^(GET|HEAD)$"
)

type rule struct {
	role   Role
	path   string
	method string
}

var rules = []rule{
	{RoleAnonymous, "/health", readOnly},
	{RoleAnonymous, "/docs", readOnly},
	{RoleAnonymous, "/docs/*", readOnly},
	{RoleAnonymous, "/mcp", anyMethod},
	{RoleAnonymous, "/api/services", readOnly},
	{RoleAnonymous, "/api/services/:id", readOnly},
	{RoleAnonymous, "/api/services/chamber-boost", "^POST$"},
	{RoleAnonymous, "/api/applications", "^POST$"},
	{RoleAnonymous, "/api/applications/:id", "^(GET|HEAD|PUT)$"},
	{RoleAnonymous, "/api/applications/:id/notes", "^POST$"},
	{RoleAnonymous, "/api/ai/precheck", "^POST$"},
	{RoleAnonymous, "/api/ai/service-match", "^POST$"},
	{RoleAnonymous, "/api/certificates/:number", readOnly},

	{RoleMember, "/api/member/*", readOnly},

	{RoleStaff, "/api/applications/:id/status", "^PUT$"},
	{RoleStaff, "/api/applications/:id/certificate", "^POST$"},
	{RoleStaff, "/api/staff/*", anyMethod},
	{RoleStaff, "/api/ai/summary", "^POST$"},
	{RoleStaff, "/api/ai/comment", "^POST$"},
	{RoleStaff, "/api/ai/reviewer-assist", "^POST$"},
}

// Enforcer answers route permission questions.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer builds the role hierarchy and route policies.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	e.EnableLog(false)

	policies := make([][]string, len(rules))
	for i, r := range rules {
		policies[i] = []string{subject(r.role), r.path, r.method}
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("add policies: %w", err)
	}
	if _, err := e.AddGroupingPolicies([][]string{
		{subject(RoleMember), subject(RoleAnonymous)},
		{subject(RoleStaff), subject(RoleMember)},
	}); err != nil {
		return nil, fmt.Errorf("add role hierarchy: %w", err)
	}
	return &Enforcer{enforcer: e}, nil
}

// Allowed reports whether role may call method on path.
func (e *Enforcer) Allowed(role Role, path, method string) (bool, error) {
	return e.enforcer.Enforce(subject(role), path, strings.ToUpper(method))
}

func subject(r Role) string {
	return "role::" + string(r)
}

// Resolver maps API keys to roles.
type Resolver struct {
	keys map[string]Role
}

// NewResolver creates a Resolver. Staff keys win when a key is listed twice.
func NewResolver(staffKeys, memberKeys []string) Resolver {
	keys := make(map[string]Role, len(staffKeys)+len(memberKeys))
	for _, k := range memberKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = RoleMember
		}
	}
	for _, k := range staffKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = RoleStaff
		}
	}
	return Resolver{keys: keys}
}

// Open reports whether no keys are configured. An open portal treats every
// caller as staff.
func (r Resolver) Open() bool { return len(r.keys) == 0 }

// Resolve returns the role for a presented key. An empty key is anonymous.
func (r Resolver) Resolve(key string) (Role, error) {
	if r.Open() {
		return RoleStaff, nil
	}
	if key == "" {
		return RoleAnonymous, nil
	}
	role, ok := r.keys[key]
	if !ok {
		return "", ErrUnknownKey
	}
	return role, nil
}
