package health

import "math"

// Grade cutoffs. A score at a cutoff earns the higher grade: 90 is an A,
// 89 is a B.
const (
	gradeACutoff = 90
	gradeBCutoff = 75
	gradeCCutoff = 60
	gradeDCutoff = 40
)

// Score converts a check battery into a 0-100 integer:
// passed / total × 100, rounded to nearest.
func Score(checks []Check) int {
	if len(checks) == 0 {
		return 0
	}
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	return int(math.Round(float64(passed) / float64(len(checks)) * 100))
}

// Grade maps a score to its letter grade using the fixed cutoffs.
func Grade(score int) string {
	switch {
	case score >= gradeACutoff:
		return "A"
	case score >= gradeBCutoff:
		return "B"
	case score >= gradeCCutoff:
		return "C"
	case score >= gradeDCutoff:
		return "D"
	default:
		return "F"
	}
}
