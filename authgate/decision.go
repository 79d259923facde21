package authgate

// RedirectReason classifies why a guarded route could not render.
type RedirectReason string

const (
	// ReasonLoading means the session is still settling. It is a signal to
	// render a loading affordance and re-evaluate, not a real redirect.
	ReasonLoading RedirectReason = "loading"
	// ReasonNotAuthenticated means the route requires a session and none
	// exists. The caller should capture the original path for post-login
	// return before navigating to the login page.
	ReasonNotAuthenticated RedirectReason = "not_authenticated"
	// ReasonWrongRole means the user is authenticated but their role is not
	// allowed on the route.
	ReasonWrongRole RedirectReason = "wrong_role"
)

// Decision is the outcome of evaluating a navigation target against the
// current session.
type Decision struct {
	Allowed bool
	Target  string // redirect destination, empty for loading decisions
	Reason  RedirectReason
	Message string // user-facing denial text, wrong_role only
}

func allowed() Decision {
	return Decision{Allowed: true}
}
