package models

import "time"

// Student is an enrolled learner with the remark fields the class teacher fills in.
type Student struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Department     string     `db:"department" json:"department"`
	ClassName      string     `db:"class_name" json:"class_name"`
	Gender         string     `db:"gender" json:"gender"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Guardian       string     `db:"guardian" json:"guardian"`
	Contact        string     `db:"contact" json:"contact"`
	Address        string     `db:"address" json:"address"`
	Attendance     int        `db:"attendance" json:"attendance"`
	OverallRemark  string     `db:"overall_remark" json:"overall_remark"`
	FinalRemark    string     `db:"final_remark" json:"final_remark"`
	Recommendation string     `db:"recommendation" json:"recommendation"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	Department string
	ClassName  string
	Search     string
	Page       int
	PageSize   int
}

// Cohort is a department class that has at least one enrolled student.
type Cohort struct {
	Department string `db:"department" json:"department"`
	ClassName  string `db:"class_name" json:"class_name"`
}

// StudentDetail is a student with every recorded subject score.
type StudentDetail struct {
	Student
	Scores []StudentScore `json:"scores"`
}
