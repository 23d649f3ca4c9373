package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Role is the coarse authorization level of a user.
type Role string

// Possible role values
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Principal is the authenticated identity of a request. It is derived from a
// verified token and is never persisted.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Username and name limits
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 4
	MaxPasswordLength = 72 // bcrypt's practical limit
	MaxNameLength     = 100
)

// User represents a registered user. Usernames are unique and compared
// case-sensitively.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ResponseUser is the outward projection of a User. It never carries the
// password hash.
type ResponseUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Response projects the user for output.
func (u *User) Response() ResponseUser {
	return ResponseUser{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Principal returns the identity a token issued for this user carries.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// Validate checks if the User has valid data.
// Returns an error wrapping ErrValidation if any field fails validation.
func (u *User) Validate() error {
	if l := utf8.RuneCountInString(u.Username); l < MinUsernameLength || l > MaxUsernameLength {
		return NewValidationError("username", "must be between 3 and 50 characters")
	}
	if strings.TrimSpace(u.Username) != u.Username {
		return NewValidationError("username", "must not have leading or trailing spaces")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password", "hashed password cannot be empty")
	}
	if utf8.RuneCountInString(u.Name) > MaxNameLength {
		return NewValidationError("name", "must be at most 100 characters")
	}
	if !u.Role.IsValid() {
		return NewValidationError("role", "must be USER or ADMIN")
	}
	return nil
}

// ValidatePassword checks a plaintext password against the length limits.
// The upper bound is in bytes since bcrypt reads at most 72 bytes.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return NewValidationError("password", "must be between 4 characters and 72 bytes")
	}
	return nil
}
