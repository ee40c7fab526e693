package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graded(subject, facilitator string, g Grade) ComputedSubject {
	return ComputedSubject{Subject: subject, Facilitator: facilitator, Grade: g, GradeValue: g.Value()}
}

func TestComputeFacilitatorStats(t *testing.T) {
	students := []ProcessedStudent{
		{ID: "1", Subjects: []ComputedSubject{
			graded("Mathematics", "SIR SAMMY", GradeA1),
			graded("English Language", "MADAM NANCY", GradeA1),
		}},
		{ID: "2", Subjects: []ComputedSubject{
			graded("Mathematics", "SIR SAMMY", GradeF9),
			graded("English Language", "MADAM NANCY", GradeA1),
		}},
	}

	stats := ComputeFacilitatorStats(students)
	require.Len(t, stats, 2)

	nancy := stats[0]
	assert.Equal(t, "MADAM NANCY", nancy.FacilitatorName)
	assert.Equal(t, "English Language", nancy.Subject)
	assert.Equal(t, 2, nancy.StudentCount)
	assert.Equal(t, 2, nancy.TotalGradeValue)
	assert.Equal(t, 1.0, nancy.AverageGradeValue)
	assert.Equal(t, 88.89, nancy.PerformancePercentage)
	assert.Equal(t, GradeA1, nancy.PerformanceGrade)
	assert.Equal(t, 2, nancy.GradeCounts[GradeA1])
	assert.Len(t, nancy.GradeCounts, 9)
	assert.Equal(t, 0, nancy.GradeCounts[GradeF9])

	sammy := stats[1]
	assert.Equal(t, "SIR SAMMY", sammy.FacilitatorName)
	assert.Equal(t, 10, sammy.TotalGradeValue)
	assert.Equal(t, 5.0, sammy.AverageGradeValue)
	assert.Equal(t, 44.44, sammy.PerformancePercentage)
	assert.Equal(t, GradeC6, sammy.PerformanceGrade)
	assert.Equal(t, 1, sammy.GradeCounts[GradeA1])
	assert.Equal(t, 1, sammy.GradeCounts[GradeF9])
}

func TestComputeFacilitatorStatsSplitsSubjects(t *testing.T) {
	students := []ProcessedStudent{
		{Subjects: []ComputedSubject{
			graded("Social Studies", "SIR ASHMIE", GradeC4),
			graded("History", "SIR ASHMIE", GradeE8),
		}},
	}

	stats := ComputeFacilitatorStats(students)
	require.Len(t, stats, 2)
	assert.Equal(t, "Social Studies", stats[0].Subject)
	assert.Equal(t, 55.56, stats[0].PerformancePercentage)
	assert.Equal(t, GradeC4, stats[0].PerformanceGrade)
	assert.Equal(t, "History", stats[1].Subject)
	assert.Equal(t, 11.11, stats[1].PerformancePercentage)
	assert.Equal(t, GradeF9, stats[1].PerformanceGrade)
}

func TestPerformancePercentage(t *testing.T) {
	assert.Equal(t, 88.89, PerformancePercentage(1, 1))
	assert.Equal(t, 0.0, PerformancePercentage(9, 1))
	assert.Equal(t, 0.0, PerformancePercentage(0, 0))
	for n := 1; n <= 30; n++ {
		for total := n; total <= n*WorstGradeValue; total++ {
			pct := PerformancePercentage(total, n)
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
		}
	}
}

func TestPerformanceGrade(t *testing.T) {
	cases := map[float64]Grade{
		100: GradeA1, 80: GradeA1, 79.99: GradeB2, 70: GradeB2, 60: GradeB3,
		50: GradeC4, 45: GradeC5, 40: GradeC6, 35: GradeD7, 30: GradeE8, 29.99: GradeF9, 0: GradeF9,
	}
	for pct, want := range cases {
		assert.Equal(t, want, PerformanceGrade(pct), "pct %v", pct)
	}
}

func TestComputeFacilitatorStatsEmpty(t *testing.T) {
	assert.Empty(t, ComputeFacilitatorStats(nil))
}
