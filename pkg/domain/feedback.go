package domain

// FeedbackEntry is a rating/comment tied to a predicted role.
// Write-only for regular users; admins read the full list back.
type FeedbackEntry struct {
	User      string `json:"user,omitempty"`
	Role      string `json:"role,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// PredictionLogEntry is one row of the admin prediction log. Flagged is
// one-way: there is no unflag operation anywhere in the contract.
type PredictionLogEntry struct {
	User          string  `json:"user"`
	PredictedRole string  `json:"predicted_role"`
	Confidence    float64 `json:"confidence"`
	Timestamp     string  `json:"timestamp"`
	Flagged       bool    `json:"flagged"`
}
