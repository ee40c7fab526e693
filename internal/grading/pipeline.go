package grading

import (
	"fmt"
	"sort"
	"strings"
)

// Best-six selection sizes.
const (
	BestCoreCount     = 4
	BestElectiveCount = 2
)

// Category is the performance band derived from the best-six aggregate.
type Category string

const (
	CategoryDistinction Category = "Distinction"
	CategoryMerit       Category = "Merit"
	CategoryPass        Category = "Pass"
	CategoryFail        Category = "Fail"
)

type categoryBand struct {
	maxAggregate int
	category     Category
}

// aggregateCategoryBands apply to the best-six aggregate (lower is better). They are not
// interchangeable with facilitatorGradeBands.
var aggregateCategoryBands = []categoryBand{
	{maxAggregate: 10, category: CategoryDistinction},
	{maxAggregate: 20, category: CategoryMerit},
	{maxAggregate: 36, category: CategoryPass},
}

// excellentAggregate is the highest aggregate that earns the encouraging summary.
const excellentAggregate = 15

// DefaultRecommendation is used when a student has no manual recommendation.
const DefaultRecommendation = "Encouraged to maintain focus on core subjects. Recommended to attend extra classes for weak areas identified above. Parents are advised to supervise evening studies."

// weakGradeValue is the first grade value (D7) flagged as a weakness.
const weakGradeValue = 7

// CategoryForAggregate maps a best-six aggregate to its band.
func CategoryForAggregate(aggregate int) Category {
	for _, band := range aggregateCategoryBands {
		if aggregate <= band.maxAggregate {
			return band.category
		}
	}
	return CategoryFail
}

// ComputedSubject is one graded subject of one student.
type ComputedSubject struct {
	Subject     string  `json:"subject"`
	Score       float64 `json:"score"`
	Grade       Grade   `json:"grade"`
	GradeValue  int     `json:"grade_value"`
	Category    string  `json:"category"`
	Remark      string  `json:"remark"`
	Facilitator string  `json:"facilitator"`
	ZScore      float64 `json:"z_score"`
}

// ProcessedStudent is the aggregation result for one student. Rank stays 0 until
// RankStudents runs over the whole cohort.
type ProcessedStudent struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	Subjects             []ComputedSubject `json:"subjects"`
	BestCoreSubjects     []ComputedSubject `json:"best_core_subjects"`
	BestElectiveSubjects []ComputedSubject `json:"best_elective_subjects"`
	BestSixAggregate     int               `json:"best_six_aggregate"`
	TotalScore           float64           `json:"total_score"`
	Category             Category          `json:"category"`
	OverallRemark        string            `json:"overall_remark"`
	WeaknessAnalysis     string            `json:"weakness_analysis"`
	Recommendation       string            `json:"recommendation"`
	Attendance           string            `json:"attendance"`
	Rank                 int               `json:"rank"`
}

// ProcessStudents grades every student against stats and returns the results in input
// order, unranked.
func ProcessStudents(stats ClassStatistics, students []Student, subjects []string, settings Settings) []ProcessedStudent {
	processed := make([]ProcessedStudent, 0, len(students))
	for _, student := range students {
		processed = append(processed, ProcessStudent(stats, student, subjects, settings))
	}
	return processed
}

// ProcessStudent grades a single student.
func ProcessStudent(stats ClassStatistics, student Student, subjects []string, settings Settings) ProcessedStudent {
	computed := make([]ComputedSubject, 0, len(subjects))
	var total float64
	for _, subject := range subjects {
		score := student.Score(subject)
		total += score
		mean, stdDev := stats.Mean(subject), stats.StdDev(subject)
		result := Classify(score, mean, stdDev, settings.RemarkLabels)
		computed = append(computed, ComputedSubject{
			Subject:     subject,
			Score:       score,
			Grade:       result.Grade,
			GradeValue:  result.Value,
			Category:    result.Category,
			Remark:      SubjectRemark(score),
			Facilitator: settings.Facilitator(subject),
			ZScore:      ZScore(score, mean, stdDev),
		})
	}

	var cores, electives []ComputedSubject
	for _, subject := range computed {
		if IsCore(subject.Subject) {
			cores = append(cores, subject)
		} else {
			electives = append(electives, subject)
		}
	}
	bestCores := selectBest(cores, BestCoreCount)
	bestElectives := selectBest(electives, BestElectiveCount)

	aggregate := 0
	for _, subject := range bestCores {
		aggregate += subject.GradeValue
	}
	for _, subject := range bestElectives {
		aggregate += subject.GradeValue
	}
	category := CategoryForAggregate(aggregate)

	weakness := weaknessAnalysis(computed)
	var overall string
	if strings.TrimSpace(student.FinalRemark) != "" {
		overall = student.FinalRemark
	} else {
		if weakness == "" {
			weakness = lowestSubjectAnalysis(computed)
		}
		overall = weakness + facilitatorNotes(student.SubjectRemarks, subjects) + "\n\n" + classTeacherRemark(student, category, aggregate)
	}

	recommendation := student.Recommendation
	if strings.TrimSpace(recommendation) == "" {
		recommendation = DefaultRecommendation
	}

	return ProcessedStudent{
		ID:                   student.ID,
		Name:                 student.Name,
		Subjects:             computed,
		BestCoreSubjects:     bestCores,
		BestElectiveSubjects: bestElectives,
		BestSixAggregate:     aggregate,
		TotalScore:           total,
		Category:             category,
		OverallRemark:        overall,
		WeaknessAnalysis:     weakness,
		Recommendation:       recommendation,
		Attendance:           student.Attendance,
	}
}

// selectBest orders pool by grade value ascending, then raw score descending, and keeps
// at most n entries.
func selectBest(pool []ComputedSubject, n int) []ComputedSubject {
	sorted := make([]ComputedSubject, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].GradeValue != sorted[j].GradeValue {
			return sorted[i].GradeValue < sorted[j].GradeValue
		}
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func weaknessAnalysis(subjects []ComputedSubject) string {
	var weak []string
	for _, subject := range subjects {
		if subject.GradeValue >= weakGradeValue {
			weak = append(weak, subject.Subject)
		}
	}
	if len(weak) == 0 {
		return ""
	}
	return fmt.Sprintf("Needs urgent improvement in: %s.", strings.Join(weak, ", "))
}

func lowestSubjectAnalysis(subjects []ComputedSubject) string {
	if len(subjects) == 0 {
		return "Lowest performance in N/A."
	}
	lowest := subjects[0]
	for _, subject := range subjects[1:] {
		if subject.Score < lowest.Score {
			lowest = subject
		}
	}
	return fmt.Sprintf("Lowest performance in %s.", lowest.Subject)
}

// facilitatorNotes renders non-empty notes in subject-list order, followed by notes on
// subjects outside the list in name order.
func facilitatorNotes(remarks map[string]string, subjects []string) string {
	if len(remarks) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(subjects))
	var notes []string
	add := func(subject string) {
		text := remarks[subject]
		if strings.TrimSpace(text) == "" {
			return
		}
		notes = append(notes, fmt.Sprintf("%s: %s", subject, text))
	}
	for _, subject := range subjects {
		if _, dup := seen[subject]; dup {
			continue
		}
		seen[subject] = struct{}{}
		add(subject)
	}
	extra := make([]string, 0)
	for subject := range remarks {
		if _, ok := seen[subject]; !ok {
			extra = append(extra, subject)
		}
	}
	sort.Strings(extra)
	for _, subject := range extra {
		add(subject)
	}
	if len(notes) == 0 {
		return ""
	}
	return fmt.Sprintf(" [Facilitator Notes: %s]", strings.Join(notes, "; "))
}

func classTeacherRemark(student Student, category Category, aggregate int) string {
	if strings.TrimSpace(student.OverallRemark) != "" {
		return student.OverallRemark
	}
	outlook := "More effort required to improve aggregate."
	if aggregate <= excellentAggregate {
		outlook = "Keep up the excellent work!"
	}
	return fmt.Sprintf("Overall performance is %s. %s", category, outlook)
}
