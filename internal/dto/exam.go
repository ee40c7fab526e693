package dto

import (
	"time"

	"github.com/noah-isme/school-exams-api/internal/grading"
)

// ExamQuery selects the cohort graded together. An empty class grades the whole department.
type ExamQuery struct {
	Department string `form:"department" json:"department" validate:"required"`
	ClassName  string `form:"class" json:"class_name"`
}

// BroadsheetResponse is the ranked master sheet of a cohort.
type BroadsheetResponse struct {
	Department  string                     `json:"department"`
	ClassName   string                     `json:"class_name"`
	Subjects    []string                   `json:"subjects"`
	Statistics  grading.ClassStatistics    `json:"statistics"`
	Students    []grading.ProcessedStudent `json:"students"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// Find returns the processed entry for studentID.
func (b *BroadsheetResponse) Find(studentID string) (grading.ProcessedStudent, bool) {
	for _, s := range b.Students {
		if s.ID == studentID {
			return s, true
		}
	}
	return grading.ProcessedStudent{}, false
}

// SchoolHeader is the letterhead printed on report cards.
type SchoolHeader struct {
	SchoolName      string `json:"school_name"`
	ExamTitle       string `json:"exam_title"`
	MockSeries      string `json:"mock_series"`
	TermInfo        string `json:"term_info"`
	AcademicYear    string `json:"academic_year"`
	HeadTeacherName string `json:"head_teacher_name"`
	AttendanceTotal int    `json:"attendance_total"`
}

// ReportCardResponse is one student's graded result in class context.
type ReportCardResponse struct {
	School     SchoolHeader             `json:"school"`
	Department string                   `json:"department"`
	ClassName  string                   `json:"class_name"`
	ClassSize  int                      `json:"class_size"`
	Student    grading.ProcessedStudent `json:"student"`
}

// FacilitatorPerformanceResponse ranks facilitators of a cohort by performance percentage.
type FacilitatorPerformanceResponse struct {
	Department   string                    `json:"department"`
	ClassName    string                    `json:"class_name"`
	Facilitators []grading.FacilitatorStat `json:"facilitators"`
}
