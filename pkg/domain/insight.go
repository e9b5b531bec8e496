package domain

// CareerInsight is the narrative annotation derived from the latest
// prediction. It lives only for the current view; nothing persists it
// client-side.
type CareerInsight struct {
	Message          string   `json:"message"`
	AlternativeRoles []string `json:"alternative_roles,omitempty"`
}
