// Package token inspects the opaque bearer credential held by a session.
// The token is opaque by contract, but when the backend happens to issue a
// JWT its expiry claim can be read locally to schedule a refresh before the
// token lapses. Inspection is advisory only and never feeds an authorization
// decision.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ExpiresAt extracts the expiry of a bearer token without verifying its
// signature. The second return is false when the token is empty, not a JWT,
// or carries no exp claim.
func ExpiresAt(rawToken string) (time.Time, bool) {
	if strings.TrimSpace(rawToken) == "" {
		return time.Time{}, false
	}

	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := unverifiedToken.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// RefreshDue reports whether a proactive refresh should be issued: true when
// the token expires within the leeway window. Opaque tokens always return
// false, leaving the refresh cadence to the caller.
func RefreshDue(rawToken string, leeway time.Duration, now time.Time) bool {
	expiry, ok := ExpiresAt(rawToken)
	if !ok {
		return false
	}
	return !now.Add(leeway).Before(expiry)
}
