package authgate

import (
	"strings"

	"github.com/harvestly/go-session-gate/users"
)

// Rule guards one route family. Patterns come in three shapes: exact paths
// ("/orders"), parameterized paths where ":name" segments match any single
// segment ("/orders/:id/review"), and prefix families ("/farmer/*").
type Rule struct {
	Pattern       string
	RequireAuth   bool
	RequiredRoles []users.RoleType
	FallbackPath  string
}

func (r Rule) isExact() bool {
	return !strings.HasSuffix(r.Pattern, "/*") && !strings.Contains(r.Pattern, ":")
}

// matches reports whether path falls under this rule's pattern.
func (r Rule) matches(path string) bool {
	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	if !strings.Contains(r.Pattern, ":") {
		return path == r.Pattern
	}
	patSegs := strings.Split(strings.Trim(r.Pattern, "/"), "/")
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	if len(patSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patSegs {
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}

// specificity orders competing pattern matches: more segments win, and among
// equals, more literal segments win.
func (r Rule) specificity() int {
	segs := strings.Split(strings.Trim(r.Pattern, "/"), "/")
	score := len(segs) * 2
	for _, seg := range segs {
		if !strings.HasPrefix(seg, ":") && seg != "*" {
			score++
		}
	}
	return score
}

// DefaultRules is the representative marketplace route table: buyer routes,
// farmer and admin route families, mixed buyer+farmer routes, and the
// parameterized review route. The exact set is deployment-defined; callers
// can pass their own table to New.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "/dashboard", RequireAuth: true, FallbackPath: "/"},
		{Pattern: "/cart", RequireAuth: true, RequiredRoles: []users.RoleType{users.RoleBuyer}, FallbackPath: "/"},
		{Pattern: "/orders", RequireAuth: true, RequiredRoles: []users.RoleType{users.RoleBuyer, users.RoleFarmer}, FallbackPath: "/"},
		{Pattern: "/orders/:id/review", RequireAuth: true, RequiredRoles: []users.RoleType{users.RoleBuyer}, FallbackPath: "/orders"},
		{Pattern: "/reviews", RequireAuth: true, RequiredRoles: []users.RoleType{users.RoleBuyer}, FallbackPath: "/"},
		{Pattern: "/messages", RequireAuth: true, RequiredRoles: []users.RoleType{users.RoleBuyer, users.RoleFarmer}, FallbackPath: "/"},
		{Pattern: "/farmer/*", RequireAuth: true, RequiredRoles: []users.RoleType{users.RoleFarmer}, FallbackPath: "/"},
		{Pattern: "/admin/*", RequireAuth: true, RequiredRoles: []users.RoleType{users.RoleAdmin}, FallbackPath: "/"},
	}
}
