package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Placeholder is the value rendered for an absent field and recognized
// as "not filled in" wherever education data gates an action.
const Placeholder = "-"

// Education is the user's education record nested under the profile.
// CGPA and Year are pointers because both are legitimately absent for a
// fresh profile; their bounds only apply when present.
type Education struct {
	Degree         string   `json:"degree" validate:"required"`
	Specialization string   `json:"specialization" validate:"required"`
	CGPA           *float64 `json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Year           *int     `json:"year,omitempty" validate:"omitempty,gte=2000"`
	CollegeTier    string   `json:"collegeTier,omitempty"`
	Internship     string   `json:"internship,omitempty"`
	Projects       string   `json:"projects,omitempty"`
	Backlogs       string   `json:"backlogs,omitempty"`
	Certifications []string `json:"certifications"`
}

var educationValidate = validator.New()

// Validate applies the same bound checks the server performs, so the
// client can reject bad input before any network call. The returned map
// is keyed by the wire field name.
func (e Education) Validate() map[string]string {
	errs := make(map[string]string)

	if err := educationValidate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Field() {
				case "Degree":
					errs["degree"] = "degree is required"
				case "Specialization":
					errs["specialization"] = "specialization is required"
				case "CGPA":
					errs["cgpa"] = "cgpa must be between 0 and 10"
				case "Year":
					errs["year"] = "year must be 2000 or later"
				}
			}
		} else {
			errs["education"] = err.Error()
		}
	}

	// validator has no "current year" tag; the upper bound moves.
	if e.Year != nil && *e.Year > time.Now().Year() {
		errs["year"] = "year cannot be in the future"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// HasPredictionInputs reports whether degree and specialization are
// filled in with real values. Prediction must not be attempted otherwise.
func (e *Education) HasPredictionInputs() bool {
	if e == nil {
		return false
	}
	return e.Degree != "" && e.Degree != Placeholder &&
		e.Specialization != "" && e.Specialization != Placeholder
}

// ParseCertifications splits a free-text, comma-separated certification
// list into an ordered sequence, dropping empties and the placeholder.
func ParseCertifications(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || text == Placeholder {
		return []string{}
	}
	parts := strings.Split(text, ",")
	certs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			certs = append(certs, p)
		}
	}
	return certs
}

// Specializations offered per degree, mirrored from the education form
// of the web client this replaces.
var DegreeSpecializations = map[string][]string{
	"B.Tech": {"Computer Science", "Information Technology", "Artificial Intelligence", "Data Science", "Electronics", "Mechanical", "Civil"},
	"B.E":    {"Computer Engineering", "Electrical", "Mechanical", "Civil"},
	"BCA":    {"Computer Applications", "Data Analytics"},
	"B.Sc":   {"Computer Science", "Mathematics", "Statistics", "Physics"},
	"B.Com":  {"Accounting", "Finance"},
	"BBA":    {"Management", "Marketing"},
	"M.Tech": {"Computer Science", "AI & ML", "Data Science", "Cyber Security"},
	"MCA":    {"Software Development", "Data Science"},
	"M.Sc":   {"Computer Science", "Data Science"},
	"MBA":    {"HR", "Marketing", "Finance", "Business Analytics"},
}

// Degrees lists the degree choices in form order.
var Degrees = []string{"B.Tech", "B.E", "BCA", "B.Sc", "B.Com", "BBA", "M.Tech", "MCA", "M.Sc", "MBA"}
