package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankStudents(t *testing.T) {
	input := []ProcessedStudent{
		{ID: "a", BestSixAggregate: 20, TotalScore: 400},
		{ID: "b", BestSixAggregate: 12, TotalScore: 500},
		{ID: "c", BestSixAggregate: 20, TotalScore: 450},
		{ID: "d", BestSixAggregate: 20, TotalScore: 400},
		{ID: "e", BestSixAggregate: 6, TotalScore: 300},
	}

	ranked := RankStudents(input)
	require.Len(t, ranked, 5)

	order := make([]string, 0, len(ranked))
	for i, p := range ranked {
		order = append(order, p.ID)
		assert.Equal(t, i+1, p.Rank)
	}
	assert.Equal(t, []string{"e", "b", "c", "a", "d"}, order)

	// ties on aggregate and total still get distinct ranks
	assert.Equal(t, 4, ranked[3].Rank)
	assert.Equal(t, 5, ranked[4].Rank)

	for _, p := range input {
		assert.Equal(t, 0, p.Rank, "input must not be mutated")
	}
}

func TestRankStudentsEmpty(t *testing.T) {
	assert.Empty(t, RankStudents(nil))
}
