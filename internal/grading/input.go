package grading

// UnassignedFacilitator is reported for subjects nobody teaches.
const UnassignedFacilitator = "TBA"

// Student is the engine's view of one learner: raw scores plus the free-text fields that
// feed remark synthesis.
type Student struct {
	ID   string
	Name string
	// Scores maps subject to raw score. A missing subject scores 0.
	Scores map[string]float64
	// SubjectRemarks maps subject to a facilitator's free-text note.
	SubjectRemarks map[string]string
	// OverallRemark is the class teacher's note; it replaces the generated summary.
	OverallRemark string
	// FinalRemark replaces the whole synthesized remark when non-empty.
	FinalRemark    string
	Recommendation string
	Attendance     string
}

// Score returns the raw score for subject, 0 when absent.
func (s Student) Score(subject string) float64 {
	return s.Scores[subject]
}

// StaffMember is one roster entry and the subjects they teach.
type StaffMember struct {
	Name     string
	Subjects []string
}

func (m StaffMember) teaches(subject string) bool {
	for _, s := range m.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// Settings carries the configuration the pipeline needs. It is always passed explicitly.
type Settings struct {
	// FacilitatorMap is the legacy subject to name mapping, consulted after Staff.
	FacilitatorMap map[string]string
	RemarkLabels   RemarkLabels
	// Staff is scanned in order; the first member teaching a subject wins.
	Staff []StaffMember
}

// Facilitator resolves the name of whoever teaches subject.
func (s Settings) Facilitator(subject string) string {
	for _, member := range s.Staff {
		if member.teaches(subject) {
			return member.Name
		}
	}
	if name, ok := s.FacilitatorMap[subject]; ok && name != "" {
		return name
	}
	return UnassignedFacilitator
}
