package scoring

// Grade is a letter grade derived from the overall score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

var gradeFloors = []struct {
	min   int
	grade Grade
}{
	{90, GradeA},
	{80, GradeB},
	{70, GradeC},
	{60, GradeD},
}

// GradeFor maps an overall score to its letter. Scores below 60 are an F.
func GradeFor(overall int) Grade {
	for _, f := range gradeFloors {
		if overall >= f.min {
			return f.grade
		}
	}
	return GradeF
}
