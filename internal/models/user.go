package models

// UserRole represents the available roles controlling document visibility and
// moderation rights.
type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleExpert UserRole = "expert"
	RoleAdmin  UserRole = "admin"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleExpert, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanSeeAllDocuments reports whether the role bypasses the approved-only
// document filter.
func (r UserRole) CanSeeAllDocuments() bool {
	return r == RoleAdmin || r == RoleExpert
}

// UserProfile is the internal record describing a caller, keyed by the
// identity the external provider issued. Created on first successful token
// verification, read-mostly thereafter.
type UserProfile struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}
