package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeClassStatistics(t *testing.T) {
	students := []Student{
		{ID: "1", Scores: map[string]float64{"Mathematics": 2, "Science": 10}},
		{ID: "2", Scores: map[string]float64{"Mathematics": 4, "Science": 10}},
		{ID: "3", Scores: map[string]float64{"Mathematics": 4}},
		{ID: "4", Scores: map[string]float64{"Mathematics": 4, "Science": 10}},
		{ID: "5", Scores: map[string]float64{"Mathematics": 5, "Science": 10}},
		{ID: "6", Scores: map[string]float64{"Mathematics": 5, "Science": 10}},
		{ID: "7", Scores: map[string]float64{"Mathematics": 7, "Science": 10}},
		{ID: "8", Scores: map[string]float64{"Mathematics": 9, "Science": 10}},
	}

	stats := ComputeClassStatistics(students, []string{"Mathematics", "Science", "French"})

	assert.Len(t, stats.SubjectMeans, 3)
	assert.Len(t, stats.SubjectStdDevs, 3)
	assert.Equal(t, 5.0, stats.Mean("Mathematics"))
	assert.Equal(t, 2.0, stats.StdDev("Mathematics"))
	// student 3 has no science score and counts as 0
	assert.Equal(t, 8.75, stats.Mean("Science"))
	assert.InDelta(t, 3.3072, stats.StdDev("Science"), 0.0001)
	assert.Equal(t, 0.0, stats.Mean("French"))
	assert.Equal(t, 0.0, stats.StdDev("French"))
}

func TestComputeClassStatisticsEmptyCohort(t *testing.T) {
	stats := ComputeClassStatistics(nil, []string{"Mathematics", "Science"})

	assert.Equal(t, map[string]float64{"Mathematics": 0, "Science": 0}, stats.SubjectMeans)
	assert.Equal(t, map[string]float64{"Mathematics": 0, "Science": 0}, stats.SubjectStdDevs)
}

func TestStdDevIsPopulation(t *testing.T) {
	values := []float64{90, 80, 70, 60}
	mean := Mean(values)

	assert.Equal(t, 75.0, mean)
	assert.InDelta(t, 11.1803, StdDev(values, mean), 0.0001)
	assert.Equal(t, 0.0, StdDev(nil, 0))
	assert.Equal(t, 0.0, Mean(nil))
}
