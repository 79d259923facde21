// Package authgate decides whether a navigation target is reachable given
// the current session. Evaluate is a pure function over its inputs so route
// authorization can be tested without any rendering or navigation layer.
package authgate

import (
	"fmt"
	"strings"

	"github.com/harvestly/go-session-gate/session"
	"github.com/harvestly/go-session-gate/users"
)

const defaultLoginPath = "/login"

// Gate holds the immutable route-authorization table. Rules are resolved
// exact-path first, then by the most specific matching pattern.
type Gate struct {
	exact     map[string]Rule
	patterns  []Rule
	loginPath string
}

// GateOption defines a function type to modify the Gate instance.
type GateOption func(*Gate)

// WithLoginPath overrides where unauthenticated users are sent.
func WithLoginPath(path string) GateOption {
	return func(g *Gate) {
		g.loginPath = path
	}
}

// New builds a Gate from a rule table. The table is copied and never mutated
// afterwards.
func New(rules []Rule, options ...GateOption) *Gate {
	g := &Gate{
		exact:     make(map[string]Rule),
		loginPath: defaultLoginPath,
	}
	for _, rule := range rules {
		if rule.isExact() {
			g.exact[rule.Pattern] = rule
		} else {
			g.patterns = append(g.patterns, rule)
		}
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// LoginPath returns where not_authenticated decisions redirect to.
func (g *Gate) LoginPath() string {
	return g.loginPath
}

// Evaluate maps a navigation target and session snapshot to a Decision.
// Unguarded paths are allowed; in-flight sessions get a loading signal and
// never a redirect, so an about-to-be-authenticated user is not bounced to
// the login page.
func (g *Gate) Evaluate(path string, snap session.Snapshot) Decision {
	rule, ok := g.resolve(path)
	if !ok {
		return allowed()
	}

	if snap.State.InFlight() {
		return Decision{Reason: ReasonLoading}
	}

	needsAuth := rule.RequireAuth || len(rule.RequiredRoles) > 0
	if needsAuth && !snap.Authenticated() {
		return Decision{Target: g.loginPath, Reason: ReasonNotAuthenticated}
	}

	if len(rule.RequiredRoles) > 0 && !roleAllowed(snap.User.Role, rule.RequiredRoles) {
		target := rule.FallbackPath
		if home, ok := snap.User.Role.DefaultPath(); ok {
			target = home
		}
		return Decision{
			Target:  target,
			Reason:  ReasonWrongRole,
			Message: denialMessage(rule.RequiredRoles),
		}
	}

	return allowed()
}

// resolve finds the governing rule for a path: exact match wins, otherwise
// the most specific matching pattern.
func (g *Gate) resolve(path string) (Rule, bool) {
	if rule, ok := g.exact[path]; ok {
		return rule, true
	}
	var (
		best      Rule
		bestScore = -1
	)
	for _, rule := range g.patterns {
		if !rule.matches(path) {
			continue
		}
		if score := rule.specificity(); score > bestScore {
			best = rule
			bestScore = score
		}
	}
	return best, bestScore >= 0
}

func roleAllowed(role users.RoleType, required []users.RoleType) bool {
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

func denialMessage(required []users.RoleType) string {
	names := make([]string, 0, len(required))
	for _, r := range required {
		names = append(names, r.DisplayName())
	}
	return fmt.Sprintf("This page is only available for %s", strings.Join(names, " and "))
}
