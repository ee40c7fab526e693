package grading

// GradeResult is the outcome of classifying one score.
type GradeResult struct {
	Grade    Grade  `json:"grade"`
	Value    int    `json:"value"`
	Category string `json:"category"`
}

type zBand struct {
	threshold float64
	grade     Grade
}

// zScoreBands are one-tailed normal approximation cut-offs in standard deviations from the
// mean, evaluated top-down. A score exactly on a threshold belongs to the higher band.
var zScoreBands = []zBand{
	{threshold: 1.645, grade: GradeA1},
	{threshold: 1.036, grade: GradeB2},
	{threshold: 0.524, grade: GradeB3},
	{threshold: 0, grade: GradeC4},
	{threshold: -0.524, grade: GradeC5},
	{threshold: -1.036, grade: GradeC6},
	{threshold: -1.645, grade: GradeD7},
	{threshold: -2.326, grade: GradeE8},
}

// zeroSpreadGrade is awarded to every score when the cohort has no spread.
const zeroSpreadGrade = GradeC4

// Classify maps a score to a grade relative to the subject mean and standard deviation of
// the cohort it was drawn from.
func Classify(score, mean, stdDev float64, labels RemarkLabels) GradeResult {
	if stdDev == 0 {
		return newGradeResult(zeroSpreadGrade, labels)
	}
	diff := score - mean
	for _, band := range zScoreBands {
		if diff >= band.threshold*stdDev {
			return newGradeResult(band.grade, labels)
		}
	}
	return newGradeResult(GradeF9, labels)
}

// ZScore returns (score-mean)/stdDev, or 0 when stdDev is 0.
func ZScore(score, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	return (score - mean) / stdDev
}

func newGradeResult(g Grade, labels RemarkLabels) GradeResult {
	return GradeResult{Grade: g, Value: g.Value(), Category: labels.Label(g)}
}
