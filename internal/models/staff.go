package models

import (
	"time"

	"github.com/lib/pq"
)

// StaffRole describes what a staff member does in class.
type StaffRole string

const (
	StaffRoleClassTeacher   StaffRole = "Class Teacher"
	StaffRoleSubjectTeacher StaffRole = "Subject Teacher"
	StaffRoleBoth           StaffRole = "Both"
)

// StaffStatus is the employment status.
type StaffStatus string

const (
	StaffStatusFullTime StaffStatus = "Full Time"
	StaffStatusPartTime StaffStatus = "Part Time"
)

// StaffMember is a facilitator on the roster. Roster order is creation order.
type StaffMember struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Role          StaffRole      `db:"role" json:"role"`
	Status        StaffStatus    `db:"status" json:"status"`
	Subjects      pq.StringArray `db:"subjects" json:"subjects"`
	Contact       string         `db:"contact" json:"contact"`
	Qualification string         `db:"qualification" json:"qualification"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
