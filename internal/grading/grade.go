// Package grading implements the norm-referenced grading engine used for report cards,
// the master broad-sheet and facilitator performance tables.
//
// Every function in this package is pure: it reads its arguments, allocates its result and
// never performs I/O. Callers recompute from a fresh snapshot whenever scores, the roster or
// settings change.
package grading

// Grade is a letter on the nine-point scale, A1 being the best and F9 the worst.
type Grade string

const (
	GradeA1 Grade = "A1"
	GradeB2 Grade = "B2"
	GradeB3 Grade = "B3"
	GradeC4 Grade = "C4"
	GradeC5 Grade = "C5"
	GradeC6 Grade = "C6"
	GradeD7 Grade = "D7"
	GradeE8 Grade = "E8"
	GradeF9 Grade = "F9"
)

// WorstGradeValue is the numeric value of F9.
const WorstGradeValue = 9

// Grades lists the scale from best to worst.
var Grades = []Grade{GradeA1, GradeB2, GradeB3, GradeC4, GradeC5, GradeC6, GradeD7, GradeE8, GradeF9}

// Value returns 1 for A1 through 9 for F9, and 0 for a letter outside the scale.
func (g Grade) Value() int {
	for i, grade := range Grades {
		if grade == g {
			return i + 1
		}
	}
	return 0
}

func (g Grade) String() string { return string(g) }

// DefaultRemarkLabels are used for any grade missing from a caller supplied label map.
var DefaultRemarkLabels = RemarkLabels{
	GradeA1: "Excellent",
	GradeB2: "Very Good",
	GradeB3: "Good",
	GradeC4: "Credit",
	GradeC5: "Credit",
	GradeC6: "Credit",
	GradeD7: "Pass",
	GradeE8: "Pass",
	GradeF9: "Fail",
}

// RemarkLabels maps a grade to the category label printed next to it.
type RemarkLabels map[Grade]string

// Label returns the configured label for g, falling back to DefaultRemarkLabels.
func (l RemarkLabels) Label(g Grade) string {
	if label, ok := l[g]; ok && label != "" {
		return label
	}
	return DefaultRemarkLabels[g]
}

// RemarkLabelsFromMap converts a string keyed map, as stored in settings, into RemarkLabels.
func RemarkLabelsFromMap(raw map[string]string) RemarkLabels {
	labels := make(RemarkLabels, len(raw))
	for key, label := range raw {
		labels[Grade(key)] = label
	}
	return labels
}
