package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/school-exams-api/internal/models"
)

const scoreColumns = "student_id, subject, section_a, section_b, score, facilitator_remark, updated_at"

// ScoreRepository stores per-subject scores.
type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// ListByStudent returns a student's scores ordered by subject.
func (r *ScoreRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentScore, error) {
	scores := []models.StudentScore{}
	query := "SELECT " + scoreColumns + " FROM student_scores WHERE student_id = $1 ORDER BY subject ASC"
	if err := r.db.SelectContext(ctx, &scores, query, studentID); err != nil {
		return nil, fmt.Errorf("list student scores: %w", err)
	}
	return scores, nil
}

// ListByStudents returns the scores of every listed student.
func (r *ScoreRepository) ListByStudents(ctx context.Context, studentIDs []string) ([]models.StudentScore, error) {
	scores := []models.StudentScore{}
	if len(studentIDs) == 0 {
		return scores, nil
	}
	query := "SELECT " + scoreColumns + " FROM student_scores WHERE student_id = ANY($1) ORDER BY student_id ASC, subject ASC"
	if err := r.db.SelectContext(ctx, &scores, query, pq.Array(studentIDs)); err != nil {
		return nil, fmt.Errorf("list class scores: %w", err)
	}
	return scores, nil
}

// Upsert writes a score, replacing any previous entry for the same subject.
func (r *ScoreRepository) Upsert(ctx context.Context, score *models.StudentScore) error {
	score.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO student_scores (student_id, subject, section_a, section_b, score, facilitator_remark, updated_at)
        VALUES (:student_id, :subject, :section_a, :section_b, :score, :facilitator_remark, :updated_at)
        ON CONFLICT (student_id, subject) DO UPDATE SET section_a = EXCLUDED.section_a, section_b = EXCLUDED.section_b,
        score = EXCLUDED.score, facilitator_remark = EXCLUDED.facilitator_remark, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, score); err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}
