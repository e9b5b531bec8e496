package domain

// Profile is the server-owned user record. The client holds it only for
// the current view; edits go through partial PATCH requests and the view
// is refreshed from the server's copy afterwards.
type Profile struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	About     string     `json:"about,omitempty"`
	Role      Role       `json:"role,omitempty"`
	Education *Education `json:"education,omitempty"`
}

// ProfileEdit carries only the fields the user changed. Nil pointers are
// omitted from the request body so the server merge stays partial.
type ProfileEdit struct {
	Username *string `json:"username,omitempty"`
	About    *string `json:"about,omitempty"`
}

// DisplayRole returns the effective role, defaulting to user when the
// server omits the field.
func (p Profile) DisplayRole() Role {
	if p.Role == "" {
		return RoleUser
	}
	return p.Role
}
