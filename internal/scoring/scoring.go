// Package scoring turns the four component scores returned by the AI
// reviewer into one overall score and a category label.
package scoring

import (
	"fmt"
	"math"
)

// Fixed weights. Experience dominates, then skills, then education. The
// supplemental score is stored for reviewers but does not enter the formula.
const (
	WeightExperience = 0.50
	WeightSkills     = 0.30
	WeightEducation  = 0.20
)

// Category labels, assigned by non-overlapping bands over the overall score.
const (
	CategoryBest     = "Best Match"
	CategoryGood     = "Good Match"
	CategoryPartial  = "Partial Match"
	CategoryMismatch = "Mismatched"
)

const (
	CodeInvalidScore    = "invalid_score"
	CodeInvalidCategory = "invalid_category"
)

// Components holds the per-dimension scores from the AI reviewer, each 0-100.
type Components struct {
	Education    int `json:"education_score"`
	Skills       int `json:"skills_score"`
	Experience   int `json:"experience_score"`
	Supplemental int `json:"supplemental_score"`
}

func inRange(v int) bool { return v >= 0 && v <= 100 }

// Overall computes the weighted overall score, rounded to the nearest integer.
func Overall(c Components) int {
	raw := WeightExperience*float64(c.Experience) +
		WeightSkills*float64(c.Skills) +
		WeightEducation*float64(c.Education)
	return int(math.Round(raw))
}

// Categorize maps an overall score to its band. Lower bounds are inclusive:
// exactly 90 is Best Match, exactly 89 is Good Match.
func Categorize(overall int) string {
	switch {
	case overall >= 90:
		return CategoryBest
	case overall >= 70:
		return CategoryGood
	case overall >= 50:
		return CategoryPartial
	default:
		return CategoryMismatch
	}
}

// IntegrityError reports a stored score that disagrees with what the
// components re-derive to. It should never happen when the scoring pipeline
// is the only writer; seeing one means corruption or direct manipulation.
type IntegrityError struct {
	Code    string
	Message string
}

func (e *IntegrityError) Error() string { return e.Code + ": " + e.Message }

// Verify re-derives overall and category from the components and rejects any
// disagreement. Called at the storage boundary, not on the computation path.
func Verify(c Components, overall int, category string) error {
	for _, v := range []int{c.Education, c.Skills, c.Experience, c.Supplemental} {
		if !inRange(v) {
			return &IntegrityError{
				Code:    CodeInvalidScore,
				Message: fmt.Sprintf("component score %d outside [0, 100]", v),
			}
		}
	}
	if want := Overall(c); overall != want {
		return &IntegrityError{
			Code:    CodeInvalidScore,
			Message: fmt.Sprintf("stored overall %d, re-derived %d", overall, want),
		}
	}
	if want := Categorize(overall); category != want {
		return &IntegrityError{
			Code:    CodeInvalidCategory,
			Message: fmt.Sprintf("stored category %q, re-derived %q", category, want),
		}
	}
	return nil
}
