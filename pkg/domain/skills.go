package domain

// SkillFields lists the eight self-rated skills in form order. Each
// rating is an integer 0..10.
var SkillFields = []string{
	"programming",
	"data_analysis",
	"ml",
	"web",
	"sql",
	"cloud",
	"communication",
	"problem_solving",
}

// Skills maps skill field name to a 0..10 self rating.
type Skills map[string]int

// ClampRating bounds a skill rating to the 0..10 scale.
func ClampRating(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
