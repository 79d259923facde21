package navigator

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/harvestly/go-session-gate/authgate"
	"github.com/harvestly/go-session-gate/users"
)

const signInMessage = "Please sign in to continue"

// Coordinator consumes gate decisions and performs the matching effect. It
// owns the navigation intent and the notification dedup state; the rendering
// layer only acts on the returned Outcome.
type Coordinator struct {
	nav      Navigator
	notifier Notifier
	nowTime  func() time.Time // nowTime function (injectable for testing)

	mu          sync.Mutex
	intent      *Intent
	shown       map[string]bool // (path|reason) pairs already notified
	currentPath string
	loggingOut  bool
}

// CoordinatorOption defines a function type to modify the Coordinator instance.
type CoordinatorOption func(*Coordinator)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		c.nowTime = nowFunc
	}
}

// NewCoordinator wires the coordinator to its effect sinks. notifier may be
// nil when the embedding application has no notification surface.
func NewCoordinator(nav Navigator, notifier Notifier, options ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		nav:      nav,
		notifier: notifier,
		nowTime:  time.Now,
		shown:    make(map[string]bool),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Apply executes the decision produced for path. Redirects replace the
// current history entry. A not_authenticated redirect captures path as the
// navigation intent so a later login can return there.
func (c *Coordinator) Apply(path string, decision authgate.Decision) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path != c.currentPath {
		c.currentPath = path
		c.shown = make(map[string]bool)
	}

	if decision.Allowed {
		return OutcomeRender
	}

	switch decision.Reason {
	case authgate.ReasonLoading:
		return OutcomeLoading
	case authgate.ReasonNotAuthenticated:
		if path != decision.Target {
			c.intent = &Intent{TargetPath: path, CapturedAt: c.nowTime()}
		}
		c.notifyLocked(path, decision, signInMessage)
		c.nav.Replace(decision.Target)
		return OutcomeRedirected
	case authgate.ReasonWrongRole:
		c.notifyLocked(path, decision, decision.Message)
		c.nav.Replace(decision.Target)
		return OutcomeRedirected
	}

	log.Warn().Str("path", path).Str("reason", string(decision.Reason)).Msg("unknown decision reason, rendering nothing")
	return OutcomeRedirected
}

// PostLogin performs the redirect after a session becomes authenticated:
// to the captured intent when one exists, otherwise to the role's default
// landing page. The intent is consumed either way.
func (c *Coordinator) PostLogin(user users.User) {
	c.mu.Lock()
	intent := c.intent
	c.intent = nil
	c.mu.Unlock()

	if intent != nil {
		c.nav.Navigate(intent.TargetPath)
		return
	}
	if home, ok := user.Role.DefaultPath(); ok {
		c.nav.Navigate(home)
		return
	}
	c.nav.Navigate("/")
}

// BeginLogout marks a logout transition as in flight. While set, no access
// denied notification is shown, so intentional sign-out never flashes an
// error. The pending intent is discarded: the user chose to leave.
func (c *Coordinator) BeginLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loggingOut = true
	c.intent = nil
}

// FinishLogout clears the logout transition flag.
func (c *Coordinator) FinishLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loggingOut = false
}

// Intent returns the currently captured navigation intent, nil when none.
func (c *Coordinator) Intent() *Intent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.intent == nil {
		return nil
	}
	i := *c.intent
	return &i
}

// notifyLocked shows a notification at most once per (path, reason) until
// the path changes. It stays silent during logout transitions and while the
// evaluated path is already the redirect destination (mid-bounce re-render).
func (c *Coordinator) notifyLocked(path string, decision authgate.Decision, message string) {
	if c.notifier == nil || message == "" {
		return
	}
	if c.loggingOut {
		return
	}
	if path == decision.Target {
		return
	}
	key := path + "|" + string(decision.Reason)
	if c.shown[key] {
		return
	}
	c.shown[key] = true
	c.notifier.Notify(message)
}
