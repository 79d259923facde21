package navigator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harvestly/go-session-gate/authgate"
	"github.com/harvestly/go-session-gate/navigator"
	"github.com/harvestly/go-session-gate/navigator/navfakes"
	"github.com/harvestly/go-session-gate/users"
)

type testFixture struct {
	nav         *navfakes.FakeNavigator
	notifier    *navfakes.FakeNotifier
	coordinator *navigator.Coordinator
	now         time.Time
}

func newFixture() *testFixture {
	f := &testFixture{
		nav:      navfakes.NewFakeNavigator(),
		notifier: navfakes.NewFakeNotifier(),
		now:      time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
	}
	f.coordinator = navigator.NewCoordinator(f.nav, f.notifier, navigator.WithNowTime(func() time.Time { return f.now }))
	return f
}

func notAuthenticated() authgate.Decision {
	return authgate.Decision{Target: "/login", Reason: authgate.ReasonNotAuthenticated}
}

func wrongRole(target, message string) authgate.Decision {
	return authgate.Decision{Target: target, Reason: authgate.ReasonWrongRole, Message: message}
}

func TestApplyAllowedRenders(t *testing.T) {
	f := newFixture()

	outcome := f.coordinator.Apply("/orders", authgate.Decision{Allowed: true})
	require.Equal(t, navigator.OutcomeRender, outcome)
	require.Empty(t, f.nav.Replaces())
	require.Empty(t, f.notifier.Messages())
}

func TestApplyLoadingRendersAffordance(t *testing.T) {
	f := newFixture()

	outcome := f.coordinator.Apply("/orders", authgate.Decision{Reason: authgate.ReasonLoading})
	require.Equal(t, navigator.OutcomeLoading, outcome)
	require.Empty(t, f.nav.Replaces(), "loading must not navigate")
}

func TestApplyNotAuthenticatedCapturesIntentAndRedirects(t *testing.T) {
	f := newFixture()

	outcome := f.coordinator.Apply("/orders/42/review", notAuthenticated())
	require.Equal(t, navigator.OutcomeRedirected, outcome)
	require.Equal(t, []string{"/login"}, f.nav.Replaces(), "redirects replace history")
	require.Empty(t, f.nav.Pushes())

	intent := f.coordinator.Intent()
	require.NotNil(t, intent)
	require.Equal(t, "/orders/42/review", intent.TargetPath)
	require.Equal(t, f.now, intent.CapturedAt)
}

func TestPostLoginConsumesIntentExactlyOnce(t *testing.T) {
	f := newFixture()
	f.coordinator.Apply("/orders/42/review", notAuthenticated())

	f.coordinator.PostLogin(users.User{Role: users.RoleBuyer})
	require.Equal(t, []string{"/orders/42/review"}, f.nav.Pushes())
	require.Nil(t, f.coordinator.Intent())

	// A second login has no intent left and lands on the role default
	f.coordinator.PostLogin(users.User{Role: users.RoleBuyer})
	require.Equal(t, []string{"/orders/42/review", "/dashboard"}, f.nav.Pushes())
}

func TestPostLoginWithoutIntentUsesRoleDefault(t *testing.T) {
	f := newFixture()

	f.coordinator.PostLogin(users.User{Role: users.RoleFarmer})
	require.Equal(t, []string{"/farmer"}, f.nav.Pushes())

	f.coordinator.PostLogin(users.User{Role: users.RoleVisitor})
	require.Equal(t, []string{"/farmer", "/"}, f.nav.Pushes(), "roles without a home land on the root")
}

func TestNotificationShownOncePerPathAndReason(t *testing.T) {
	f := newFixture()
	decision := wrongRole("/dashboard", "This page is only available for farmers")

	f.coordinator.Apply("/farmer/products", decision)
	f.coordinator.Apply("/farmer/products", decision)
	f.coordinator.Apply("/farmer/products", decision)
	require.Len(t, f.notifier.Messages(), 1, "re-renders must not stack notifications")
}

func TestNotificationDedupResetsOnPathChange(t *testing.T) {
	f := newFixture()
	decision := wrongRole("/dashboard", "This page is only available for farmers")

	f.coordinator.Apply("/farmer/products", decision)
	f.coordinator.Apply("/farmer/orders", decision)
	f.coordinator.Apply("/farmer/products", decision)
	require.Len(t, f.notifier.Messages(), 3, "each path change re-arms the notification")
}

func TestNotificationPerReason(t *testing.T) {
	f := newFixture()

	f.coordinator.Apply("/farmer/products", notAuthenticated())
	f.coordinator.Apply("/farmer/products", wrongRole("/dashboard", "This page is only available for farmers"))
	require.Len(t, f.notifier.Messages(), 2, "distinct reasons notify separately")
}

func TestNoNotificationWhileHeadingToLogin(t *testing.T) {
	f := newFixture()

	// Re-evaluation of the login path itself must stay silent
	f.coordinator.Apply("/login", notAuthenticated())
	require.Empty(t, f.notifier.Messages())
	require.Equal(t, []string{"/login"}, f.nav.Replaces())
}

func TestNoNotificationDuringLogout(t *testing.T) {
	f := newFixture()

	f.coordinator.BeginLogout()
	f.coordinator.Apply("/orders", notAuthenticated())
	require.Empty(t, f.notifier.Messages(), "intentional sign-out must not flash an access error")
	require.Equal(t, []string{"/login"}, f.nav.Replaces(), "the redirect itself still happens")

	f.coordinator.FinishLogout()
	f.coordinator.Apply("/reviews", notAuthenticated())
	require.Len(t, f.notifier.Messages(), 1)
}

func TestBeginLogoutDiscardsIntent(t *testing.T) {
	f := newFixture()
	f.coordinator.Apply("/orders/42/review", notAuthenticated())
	require.NotNil(t, f.coordinator.Intent())

	f.coordinator.BeginLogout()
	require.Nil(t, f.coordinator.Intent())
}

func TestNilNotifierIsSafe(t *testing.T) {
	nav := navfakes.NewFakeNavigator()
	c := navigator.NewCoordinator(nav, nil)

	require.NotPanics(t, func() {
		c.Apply("/orders", notAuthenticated())
	})
	require.Equal(t, []string{"/login"}, nav.Replaces())
}
