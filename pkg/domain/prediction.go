package domain

// RolePrediction is one ranked job-role recommendation. Confidence is a
// percentage in [0,100]; the server returns entries ranked descending.
type RolePrediction struct {
	JobRole    string  `json:"job_role"`
	Confidence float64 `json:"confidence"`
}

// TopRole returns the top-ranked role of a result set, or the "N/A"
// sentinel when none exists. Feedback submission uses the sentinel
// rather than blocking on a missing prediction.
func TopRole(predictions []RolePrediction) string {
	if len(predictions) == 0 {
		return "N/A"
	}
	return predictions[0].JobRole
}

// PredictionInputs echoes the education snapshot a record was made from.
type PredictionInputs struct {
	Degree         string   `json:"degree"`
	Specialization string   `json:"specialization"`
	CGPA           *float64 `json:"cgpa,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// PredictionRecord is one append-only history entry. Immutable once
// created; the server never edits past records.
type PredictionRecord struct {
	UserID      string           `json:"user_id,omitempty"`
	Inputs      PredictionInputs `json:"input_details,omitempty"`
	Predictions []RolePrediction `json:"predictions"`
	Timestamp   string           `json:"timestamp"`
}
