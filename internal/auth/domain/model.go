package domain

import "time"

// Role is what an authenticated account may do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Account is one row of the static credential table. It is derived from
// configuration at startup and never persisted.
type Account struct {
	Username     string
	PasswordHash string
	Role         Role
	DisplayName  string
}

// Identity is the result of a successful login.
type Identity struct {
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	DisplayName  string `json:"display_name"`
	OverrideUsed bool   `json:"override_used"`
}

// ActiveOverride describes an unexpired password override.
type ActiveOverride struct {
	Username         string `json:"username"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}

// Session is a logged-in browser or API client.
type Session struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	LastSeen    time.Time `json:"last_seen"`
}

// Idle reports whether the session saw no interaction for longer than timeout.
func (s Session) Idle(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastSeen) > timeout
}

// Identity returns the identity the session was opened for.
func (s Session) Identity() Identity {
	return Identity{
		Username:    s.Username,
		Role:        s.Role,
		DisplayName: s.DisplayName,
	}
}
