package models

import "time"

// StudentScore is one subject entry for one student.
type StudentScore struct {
	StudentID         string    `db:"student_id" json:"student_id"`
	Subject           string    `db:"subject" json:"subject"`
	SectionA          float64   `db:"section_a" json:"section_a"`
	SectionB          float64   `db:"section_b" json:"section_b"`
	Score             float64   `db:"score" json:"score"`
	FacilitatorRemark string    `db:"facilitator_remark" json:"facilitator_remark"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
