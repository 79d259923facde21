package session

import "errors"

var (
	NotRestoringErr    = errors.New("session is not restoring")
	InvalidStateErr    = errors.New("operation not valid in current session state")
	NoActiveSessionErr = errors.New("no active session")
)
