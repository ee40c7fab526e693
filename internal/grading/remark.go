package grading

type remarkBracket struct {
	min    float64
	remark string
}

var subjectRemarkBrackets = []remarkBracket{
	{min: 90, remark: "Outstanding mastery of subject concepts."},
	{min: 80, remark: "Excellent performance, shows great potential."},
	{min: 70, remark: "Very Good. Consistent effort displayed."},
	{min: 60, remark: "Good. Capable of achieving higher grades."},
	{min: 55, remark: "Credit. Satisfactory understanding shown."},
	{min: 50, remark: "Pass. Needs more dedication to studies."},
	{min: 40, remark: "Weak Pass. Remedial support recommended."},
}

const criticalFailureRemark = "Critical Failure. Immediate intervention required."

// SubjectRemark returns the descriptive sentence for a raw score. It does not depend on
// the cohort.
func SubjectRemark(score float64) string {
	for _, bracket := range subjectRemarkBrackets {
		if score >= bracket.min {
			return bracket.remark
		}
	}
	return criticalFailureRemark
}
