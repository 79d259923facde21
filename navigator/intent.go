package navigator

import "time"

// Intent records where the user was heading when they were bounced to the
// login page. It is created only for not_authenticated redirects and
// consumed exactly once by the post-login redirect; a logout discards it.
type Intent struct {
	TargetPath string
	CapturedAt time.Time
}
