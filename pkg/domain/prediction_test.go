package domain

import "testing"

func TestTopRole(t *testing.T) {
	predictions := []RolePrediction{
		{JobRole: "Data Scientist", Confidence: 82.5},
		{JobRole: "ML Engineer", Confidence: 61.0},
	}
	if got := TopRole(predictions); got != "Data Scientist" {
		t.Errorf("TopRole() = %q, want %q", got, "Data Scientist")
	}
}

func TestTopRole_EmptySentinel(t *testing.T) {
	if got := TopRole(nil); got != "N/A" {
		t.Errorf("TopRole(nil) = %q, want %q", got, "N/A")
	}
	if got := TopRole([]RolePrediction{}); got != "N/A" {
		t.Errorf("TopRole(empty) = %q, want %q", got, "N/A")
	}
}

func TestClampRating(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 0}, {0, 0}, {7, 7}, {10, 10}, {14, 10},
	}
	for _, tt := range tests {
		if got := ClampRating(tt.in); got != tt.want {
			t.Errorf("ClampRating(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
