// Package navigator executes route-authorization decisions: it performs the
// actual redirects, remembers where a signed-out user was heading, and keeps
// duplicate access-denied notifications from stacking up across re-renders.
package navigator

// Navigator performs navigation effects. Navigate pushes a history entry;
// Replace swaps the current one so redirects do not create back-button loops.
type Navigator interface {
	Navigate(path string)
	Replace(path string)
}

// Notifier surfaces a user-facing notification (toast, banner).
type Notifier interface {
	Notify(message string)
}

// Outcome tells the rendering layer what to do after a decision was applied.
type Outcome int

const (
	// OutcomeRender means the guarded content may render.
	OutcomeRender Outcome = iota
	// OutcomeLoading means the session is settling; render a loading
	// affordance and re-apply once it does.
	OutcomeLoading
	// OutcomeRedirected means a redirect was issued; render nothing.
	OutcomeRedirected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRender:
		return "render"
	case OutcomeLoading:
		return "loading"
	case OutcomeRedirected:
		return "redirected"
	}
	return "unknown"
}
