package domain

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestEducationValidate(t *testing.T) {
	valid := Education{
		Degree:         "B.Tech",
		Specialization: "Computer Science",
		CGPA:           floatPtr(8.2),
		Year:           intPtr(2024),
	}
	if errs := valid.Validate(); errs != nil {
		t.Errorf("Validate() = %v, want nil for a valid record", errs)
	}
}

func TestEducationValidate_RequiredFields(t *testing.T) {
	errs := Education{}.Validate()
	if errs == nil {
		t.Fatal("Validate() = nil, want errors for empty record")
	}
	if _, ok := errs["degree"]; !ok {
		t.Error("missing error for degree")
	}
	if _, ok := errs["specialization"]; !ok {
		t.Error("missing error for specialization")
	}
}

func TestEducationValidate_CGPABounds(t *testing.T) {
	for _, cgpa := range []float64{-0.1, 10.1} {
		edu := Education{Degree: "B.Tech", Specialization: "IT", CGPA: floatPtr(cgpa)}
		if errs := edu.Validate(); errs["cgpa"] == "" {
			t.Errorf("Validate() with cgpa=%v: missing cgpa error, got %v", cgpa, errs)
		}
	}
	edu := Education{Degree: "B.Tech", Specialization: "IT", CGPA: floatPtr(0)}
	if errs := edu.Validate(); errs != nil {
		t.Errorf("Validate() with cgpa=0 = %v, want nil; zero is in range", errs)
	}
}

func TestEducationValidate_YearBounds(t *testing.T) {
	edu := Education{Degree: "B.Tech", Specialization: "IT", Year: intPtr(1999)}
	if errs := edu.Validate(); errs["year"] == "" {
		t.Errorf("Validate() with year=1999: missing year error, got %v", errs)
	}

	future := time.Now().Year() + 1
	edu.Year = intPtr(future)
	if errs := edu.Validate(); errs["year"] == "" {
		t.Errorf("Validate() with year=%d: missing year error, got %v", future, errs)
	}

	edu.Year = intPtr(time.Now().Year())
	if errs := edu.Validate(); errs != nil {
		t.Errorf("Validate() with current year = %v, want nil", errs)
	}
}

func TestEducationValidate_AbsentOptionalsPass(t *testing.T) {
	edu := Education{Degree: "MCA", Specialization: "Data Science"}
	if errs := edu.Validate(); errs != nil {
		t.Errorf("Validate() = %v, want nil when optional fields are absent", errs)
	}
}

func TestHasPredictionInputs(t *testing.T) {
	tests := []struct {
		name string
		edu  *Education
		want bool
	}{
		{"nil record", nil, false},
		{"empty", &Education{}, false},
		{"placeholder degree", &Education{Degree: Placeholder, Specialization: "IT"}, false},
		{"placeholder specialization", &Education{Degree: "B.Tech", Specialization: Placeholder}, false},
		{"missing specialization", &Education{Degree: "B.Tech"}, false},
		{"complete", &Education{Degree: "B.Tech", Specialization: "IT"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edu.HasPredictionInputs(); got != tt.want {
				t.Errorf("HasPredictionInputs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCertifications(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"-", []string{}},
		{"AWS", []string{"AWS"}},
		{"AWS, GCP , , Azure", []string{"AWS", "GCP", "Azure"}},
	}
	for _, tt := range tests {
		got := ParseCertifications(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseCertifications(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseCertifications(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDegreeSpecializationsCoverAllDegrees(t *testing.T) {
	for _, degree := range Degrees {
		if len(DegreeSpecializations[degree]) == 0 {
			t.Errorf("degree %q has no specializations", degree)
		}
	}
}
