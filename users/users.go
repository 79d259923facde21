package users

import (
	"fmt"
	"strings"
)

// RoleType represents a marketplace account role
type RoleType string

const (
	RoleVisitor RoleType = "VISITOR" // Browsing without an account
	RoleBuyer   RoleType = "BUYER"   // Can order produce and review farms
	RoleFarmer  RoleType = "FARMER"  // Can list produce and fulfil orders
	RoleAdmin   RoleType = "ADMIN"   // Can manage the whole marketplace
)

// Profile holds the user-facing details attached to an account. It is
// replaced wholesale on every successful login, validate, or refresh and is
// never partially mutated.
type Profile struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	FarmName  string `json:"farm_name,omitempty"` // Farmers only
	Phone     string `json:"phone,omitempty"`
}

// User is the account attached to an authenticated session. It is owned
// exclusively by the session manager and swapped out as a whole.
type User struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	Role    RoleType `json:"role"`
	Profile Profile  `json:"profile"`
}

// ParseRole converts a wire-format role string into a RoleType.
func ParseRole(s string) (RoleType, error) {
	switch RoleType(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleVisitor:
		return RoleVisitor, nil
	case RoleBuyer:
		return RoleBuyer, nil
	case RoleFarmer:
		return RoleFarmer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// DefaultPath returns the landing page for a role, used when a guarded route
// bounces the user somewhere sensible. The second return is false for roles
// without a home of their own (visitors land wherever the rule's fallback
// says).
func (r RoleType) DefaultPath() (string, bool) {
	switch r {
	case RoleBuyer:
		return "/dashboard", true
	case RoleFarmer:
		return "/farmer", true
	case RoleAdmin:
		return "/admin", true
	case RoleVisitor:
		return "", false
	}
	return "", false
}

// DisplayName returns the human-readable role name used in denial messages.
func (r RoleType) DisplayName() string {
	switch r {
	case RoleBuyer:
		return "buyers"
	case RoleFarmer:
		return "farmers"
	case RoleAdmin:
		return "administrators"
	case RoleVisitor:
		return "visitors"
	}
	return strings.ToLower(string(r))
}
