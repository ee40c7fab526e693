package grading

import "math"

// ClassStatistics holds per-subject population statistics for one cohort.
type ClassStatistics struct {
	SubjectMeans   map[string]float64 `json:"subject_means"`
	SubjectStdDevs map[string]float64 `json:"subject_std_devs"`
}

// Mean returns the subject mean, 0 for an unknown subject.
func (s ClassStatistics) Mean(subject string) float64 {
	return s.SubjectMeans[subject]
}

// StdDev returns the subject standard deviation, 0 for an unknown subject.
func (s ClassStatistics) StdDev(subject string) float64 {
	return s.SubjectStdDevs[subject]
}

// ComputeClassStatistics computes the mean and population standard deviation of every
// subject over the cohort. A student without a score for a subject counts as 0.
func ComputeClassStatistics(students []Student, subjects []string) ClassStatistics {
	stats := ClassStatistics{
		SubjectMeans:   make(map[string]float64, len(subjects)),
		SubjectStdDevs: make(map[string]float64, len(subjects)),
	}
	scores := make([]float64, len(students))
	for _, subject := range subjects {
		for i, student := range students {
			scores[i] = student.Score(subject)
		}
		mean := Mean(scores)
		stats.SubjectMeans[subject] = mean
		stats.SubjectStdDevs[subject] = StdDev(scores, mean)
	}
	return stats
}

// Mean returns the arithmetic mean of values, 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation (divides by n) around mean.
func StdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
