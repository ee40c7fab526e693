package grading

import "math"

// Section limits for the two examination papers.
const (
	SectionAMax        = 40
	SectionBMax        = 60
	ScaledSectionBMax  = 100
	scaledSectionRatio = 1.4
)

// scaledSubject is the one Junior High subject whose papers total 140 and are normalised
// back to 100.
const scaledSubject = "Science"

// SectionScore is a subject score broken down by paper.
type SectionScore struct {
	SectionA float64 `json:"section_a"`
	SectionB float64 `json:"section_b"`
	Total    float64 `json:"total"`
}

// UsesScaledSections reports whether the department/subject pair sits a 140 mark paper.
func UsesScaledSections(d Department, subject string) bool {
	return d == DepartmentJuniorHigh && subject == scaledSubject
}

// ComposeScore clamps both sections to their limits and derives the rounded total.
func ComposeScore(sectionA, sectionB float64, scaled bool) SectionScore {
	maxB := float64(SectionBMax)
	if scaled {
		maxB = ScaledSectionBMax
	}
	a := clamp(sectionA, 0, SectionAMax)
	b := clamp(sectionB, 0, maxB)
	raw := a + b
	if scaled {
		raw /= scaledSectionRatio
	}
	return SectionScore{SectionA: a, SectionB: b, Total: math.Round(raw)}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
