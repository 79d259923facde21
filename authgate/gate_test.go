package authgate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harvestly/go-session-gate/authgate"
	"github.com/harvestly/go-session-gate/session"
	"github.com/harvestly/go-session-gate/users"
)

func authenticated(role users.RoleType) session.Snapshot {
	return session.Snapshot{
		State: session.StateAuthenticated,
		User:  &users.User{ID: "u1", Email: "u1@example.com", Role: role},
		Token: "tok-1",
	}
}

func unauthenticated() session.Snapshot {
	return session.Snapshot{State: session.StateUnauthenticated}
}

func newGate() *authgate.Gate {
	return authgate.New(authgate.DefaultRules())
}

func TestEvaluateUnguardedPathAllows(t *testing.T) {
	g := newGate()

	decision := g.Evaluate("/about", unauthenticated())
	require.True(t, decision.Allowed)

	decision = g.Evaluate("/", session.Snapshot{State: session.StateRestoring})
	require.True(t, decision.Allowed, "unguarded paths allow even while restoring")
}

func TestEvaluateLoadingWhileSessionInFlight(t *testing.T) {
	g := newGate()

	for _, state := range []session.State{session.StateRestoring, session.StateAuthenticating} {
		decision := g.Evaluate("/farmer/products", session.Snapshot{State: state})
		require.False(t, decision.Allowed)
		require.Equal(t, authgate.ReasonLoading, decision.Reason)
		require.Empty(t, decision.Target, "loading is a signal, not a redirect")
	}
}

func TestEvaluateNotAuthenticated(t *testing.T) {
	g := newGate()

	decision := g.Evaluate("/orders/42/review", unauthenticated())
	require.False(t, decision.Allowed)
	require.Equal(t, authgate.ReasonNotAuthenticated, decision.Reason)
	require.Equal(t, "/login", decision.Target)
}

func TestEvaluateErrorStateCountsAsUnauthenticated(t *testing.T) {
	g := newGate()

	decision := g.Evaluate("/dashboard", session.Snapshot{State: session.StateError})
	require.Equal(t, authgate.ReasonNotAuthenticated, decision.Reason)
}

func TestEvaluateWrongRoleRedirectsToRoleDefault(t *testing.T) {
	g := newGate()

	decision := g.Evaluate("/admin/users", authenticated(users.RoleBuyer))
	require.False(t, decision.Allowed)
	require.Equal(t, authgate.ReasonWrongRole, decision.Reason)
	require.Equal(t, "/dashboard", decision.Target)
	require.Contains(t, decision.Message, "administrators")

	decision = g.Evaluate("/farmer/products", authenticated(users.RoleBuyer))
	require.Equal(t, "/dashboard", decision.Target)
	require.Contains(t, decision.Message, "farmers")

	decision = g.Evaluate("/orders/42/review", authenticated(users.RoleFarmer))
	require.Equal(t, authgate.ReasonWrongRole, decision.Reason)
	require.Equal(t, "/farmer", decision.Target)
	require.Contains(t, decision.Message, "buyers")
}

func TestEvaluateWrongRoleFallsBackWhenRoleHasNoHome(t *testing.T) {
	g := newGate()

	// Visitors have no default landing page, so the rule's fallback wins.
	decision := g.Evaluate("/orders/42/review", authenticated(users.RoleVisitor))
	require.Equal(t, authgate.ReasonWrongRole, decision.Reason)
	require.Equal(t, "/orders", decision.Target)
}

func TestEvaluateMixedRoleRoute(t *testing.T) {
	g := newGate()

	require.True(t, g.Evaluate("/orders", authenticated(users.RoleBuyer)).Allowed)
	require.True(t, g.Evaluate("/orders", authenticated(users.RoleFarmer)).Allowed)
	require.True(t, g.Evaluate("/messages", authenticated(users.RoleFarmer)).Allowed)

	decision := g.Evaluate("/orders", authenticated(users.RoleAdmin))
	require.Equal(t, authgate.ReasonWrongRole, decision.Reason)
	require.Equal(t, "/admin", decision.Target)
}

func TestEvaluatePrefixFamilies(t *testing.T) {
	g := newGate()

	require.True(t, g.Evaluate("/farmer", authenticated(users.RoleFarmer)).Allowed)
	require.True(t, g.Evaluate("/farmer/products/12/edit", authenticated(users.RoleFarmer)).Allowed)
	require.True(t, g.Evaluate("/admin/users", authenticated(users.RoleAdmin)).Allowed)

	// Similar-looking prefixes must not leak into the family
	require.True(t, g.Evaluate("/farmers-market", unauthenticated()).Allowed)
}

func TestEvaluateParameterizedRoute(t *testing.T) {
	g := newGate()

	require.True(t, g.Evaluate("/orders/42/review", authenticated(users.RoleBuyer)).Allowed)

	// Other /orders subpaths are not guarded by the review rule
	require.True(t, g.Evaluate("/orders/42", authenticated(users.RoleBuyer)).Allowed)
	require.True(t, g.Evaluate("/orders/42/review/extra", unauthenticated()).Allowed)
}

func TestEvaluateIsPure(t *testing.T) {
	g := newGate()
	snap := authenticated(users.RoleBuyer)

	first := g.Evaluate("/admin/users", snap)
	second := g.Evaluate("/admin/users", snap)
	require.Equal(t, first, second, "identical inputs must yield identical decisions")
}

func TestWithLoginPath(t *testing.T) {
	g := authgate.New(authgate.DefaultRules(), authgate.WithLoginPath("/signin"))

	decision := g.Evaluate("/dashboard", unauthenticated())
	require.Equal(t, "/signin", decision.Target)
	require.Equal(t, "/signin", g.LoginPath())
}

func TestExactRuleBeatsPattern(t *testing.T) {
	rules := []authgate.Rule{
		{Pattern: "/farmer/*", RequireAuth: true, RequiredRoles: []users.RoleType{users.RoleFarmer}, FallbackPath: "/"},
		{Pattern: "/farmer/faq", FallbackPath: "/"},
	}
	g := authgate.New(rules)

	require.True(t, g.Evaluate("/farmer/faq", unauthenticated()).Allowed)
	require.False(t, g.Evaluate("/farmer/orders", unauthenticated()).Allowed)
}
