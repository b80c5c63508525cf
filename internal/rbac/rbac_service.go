package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policies maps role -> resource -> actions. Roles come from the JWT; the
// set is small and fixed, so it lives in code rather than a policy table.
var policies = [][3]string{
	{"admin", "*", "*"},

	{"hr", "employee", "read"},
	{"hr", "employee", "create"},
	{"hr", "employee", "update"},
	{"hr", "employee", "delete"},
	{"hr", "attendance", "read"},
	{"hr", "leave", "read"},
	{"hr", "leave", "approve"},
	{"hr", "expense", "read"},
	{"hr", "expense", "approve"},
	{"hr", "project", "read"},
	{"hr", "project", "create"},
	{"hr", "project", "update"},
	{"hr", "task", "read"},
	{"hr", "note", "read"},

	{"employee", "employee", "read"},
	{"employee", "attendance", "read"},
	{"employee", "attendance", "create"},
	{"employee", "leave", "read"},
	{"employee", "leave", "create"},
	{"employee", "expense", "read"},
	{"employee", "expense", "create"},
	{"employee", "project", "read"},
	{"employee", "task", "read"},
	{"employee", "task", "create"},
	{"employee", "task", "update"},
	{"employee", "note", "read"},
	{"employee", "note", "create"},
	{"employee", "note", "update"},
	{"employee", "note", "delete"},
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Admin wildcard short-circuits the matcher, which has no glob support.
	if ok, err := s.enforcer.Enforce(role, "*", "*"); err != nil {
		return false, err
	} else if ok {
		return true, nil
	}

	return s.enforcer.Enforce(role, resource, action)
}
