package models

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// GlobalSettingsID is the key of the single settings row.
const GlobalSettingsID = 1

// GlobalSettings holds school-wide configuration.
type GlobalSettings struct {
	ID                 int            `db:"id" json:"-"`
	SchoolName         string         `db:"school_name" json:"school_name"`
	ExamTitle          string         `db:"exam_title" json:"exam_title"`
	MockSeries         string         `db:"mock_series" json:"mock_series"`
	TermInfo           string         `db:"term_info" json:"term_info"`
	AcademicYear       string         `db:"academic_year" json:"academic_year"`
	HeadTeacherName    string         `db:"head_teacher_name" json:"head_teacher_name"`
	AttendanceTotal    int            `db:"attendance_total" json:"attendance_total"`
	FacilitatorMapping types.JSONText `db:"facilitator_mapping" json:"facilitator_mapping" swaggertype:"object"`
	GradingRemarks     types.JSONText `db:"grading_remarks" json:"grading_remarks" swaggertype:"object"`
	CustomSubjects     pq.StringArray `db:"custom_subjects" json:"custom_subjects"`
	SubmittedSubjects  pq.StringArray `db:"submitted_subjects" json:"submitted_subjects"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

// FacilitatorMap decodes the subject to facilitator mapping. Empty columns decode to an empty map.
func (s *GlobalSettings) FacilitatorMap() (map[string]string, error) {
	return decodeStringMap(s.FacilitatorMapping)
}

// RemarkLabels decodes the grade to label overrides.
func (s *GlobalSettings) RemarkLabels() (map[string]string, error) {
	return decodeStringMap(s.GradingRemarks)
}

// IsSubmitted reports whether scores for subject are finalized.
func (s *GlobalSettings) IsSubmitted(subject string) bool {
	for _, sub := range s.SubmittedSubjects {
		if sub == subject {
			return true
		}
	}
	return false
}

// EncodeStringMap converts m into a jsonb value.
func EncodeStringMap(m map[string]string) (types.JSONText, error) {
	if m == nil {
		m = map[string]string{}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}

func decodeStringMap(raw types.JSONText) (map[string]string, error) {
	out := map[string]string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := raw.Unmarshal(&out); err != nil {
		return nil, err
	}
	return out, nil
}
