package grading

import (
	"math"
	"sort"
)

// FacilitatorStat summarises the grades one facilitator's students earned in one subject.
type FacilitatorStat struct {
	FacilitatorName       string        `json:"facilitator_name"`
	Subject               string        `json:"subject"`
	StudentCount          int           `json:"student_count"`
	GradeCounts           map[Grade]int `json:"grade_counts"`
	TotalGradeValue       int           `json:"total_grade_value"`
	AverageGradeValue     float64       `json:"average_grade_value"`
	PerformancePercentage float64       `json:"performance_percentage"`
	PerformanceGrade      Grade         `json:"performance_grade"`
}

type percentageBand struct {
	min   float64
	grade Grade
}

// facilitatorGradeBands map a performance percentage to a letter. They are a plain
// percentage scale and unrelated to the z-score bands used for students.
var facilitatorGradeBands = []percentageBand{
	{min: 80, grade: GradeA1},
	{min: 70, grade: GradeB2},
	{min: 60, grade: GradeB3},
	{min: 50, grade: GradeC4},
	{min: 45, grade: GradeC5},
	{min: 40, grade: GradeC6},
	{min: 35, grade: GradeD7},
	{min: 30, grade: GradeE8},
}

// PerformanceGrade maps a facilitator performance percentage to a letter.
func PerformanceGrade(percentage float64) Grade {
	for _, band := range facilitatorGradeBands {
		if percentage >= band.min {
			return band.grade
		}
	}
	return GradeF9
}

// PerformancePercentage computes (1 - total/(count*9)) * 100 rounded to two decimals,
// or 0 for an empty group.
func PerformancePercentage(totalGradeValue, studentCount int) float64 {
	expected := studentCount * WorstGradeValue
	if expected <= 0 {
		return 0
	}
	pct := (1 - float64(totalGradeValue)/float64(expected)) * 100
	return math.Round(pct*100) / 100
}

type facilitatorKey struct {
	facilitator string
	subject     string
}

// ComputeFacilitatorStats groups every computed subject by (facilitator, subject) and
// returns one stat per pair, best performance first. Pairs with equal percentages keep the
// order in which they were first seen.
func ComputeFacilitatorStats(students []ProcessedStudent) []FacilitatorStat {
	index := make(map[facilitatorKey]int)
	var stats []FacilitatorStat
	for _, student := range students {
		for _, subject := range student.Subjects {
			key := facilitatorKey{facilitator: subject.Facilitator, subject: subject.Subject}
			i, ok := index[key]
			if !ok {
				i = len(stats)
				index[key] = i
				stats = append(stats, newFacilitatorStat(subject.Facilitator, subject.Subject))
			}
			stat := &stats[i]
			stat.StudentCount++
			stat.GradeCounts[subject.Grade]++
			stat.TotalGradeValue += subject.GradeValue
		}
	}

	for i := range stats {
		stat := &stats[i]
		if stat.StudentCount > 0 {
			stat.AverageGradeValue = float64(stat.TotalGradeValue) / float64(stat.StudentCount)
		}
		stat.PerformancePercentage = PerformancePercentage(stat.TotalGradeValue, stat.StudentCount)
		stat.PerformanceGrade = PerformanceGrade(stat.PerformancePercentage)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].PerformancePercentage > stats[j].PerformancePercentage
	})
	return stats
}

func newFacilitatorStat(facilitator, subject string) FacilitatorStat {
	counts := make(map[Grade]int, len(Grades))
	for _, g := range Grades {
		counts[g] = 0
	}
	return FacilitatorStat{FacilitatorName: facilitator, Subject: subject, GradeCounts: counts}
}
