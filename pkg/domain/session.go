package domain

// Role is the authorization level carried by a session.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the authenticated identity governing what requests the
// client may make. The token is opaque to everything except the session
// store, which inspects its expiry claim locally.
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the session may use the admin surface.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Identity is the display-only identity captured at login. Never used
// for authorization.
type Identity struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
}
