package grading

import "sort"

// RankStudents returns a copy of students ordered by best-six aggregate ascending, then
// total score descending, with positional ranks starting at 1. Students tied on both keys
// keep their input order and still receive distinct ranks.
func RankStudents(students []ProcessedStudent) []ProcessedStudent {
	ranked := make([]ProcessedStudent, len(students))
	copy(ranked, students)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].BestSixAggregate != ranked[j].BestSixAggregate {
			return ranked[i].BestSixAggregate < ranked[j].BestSixAggregate
		}
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
