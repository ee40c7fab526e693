package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-exams-api/internal/models"
)

const settingsColumns = `id, school_name, exam_title, mock_series, term_info, academic_year, head_teacher_name, attendance_total,
        facilitator_mapping, grading_remarks, custom_subjects, submitted_subjects, updated_at`

// SettingsRepository reads and writes the single global settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the settings row. It returns sql.ErrNoRows before the first save.
func (r *SettingsRepository) Get(ctx context.Context) (*models.GlobalSettings, error) {
	var settings models.GlobalSettings
	if err := r.db.GetContext(ctx, &settings, "SELECT "+settingsColumns+" FROM global_settings WHERE id = $1", models.GlobalSettingsID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save inserts or replaces the settings row.
func (r *SettingsRepository) Save(ctx context.Context, settings *models.GlobalSettings) error {
	settings.ID = models.GlobalSettingsID
	settings.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO global_settings (id, school_name, exam_title, mock_series, term_info, academic_year, head_teacher_name,
        attendance_total, facilitator_mapping, grading_remarks, custom_subjects, submitted_subjects, updated_at)
        VALUES (:id, :school_name, :exam_title, :mock_series, :term_info, :academic_year, :head_teacher_name,
        :attendance_total, :facilitator_mapping, :grading_remarks, :custom_subjects, :submitted_subjects, :updated_at)
        ON CONFLICT (id) DO UPDATE SET school_name = EXCLUDED.school_name, exam_title = EXCLUDED.exam_title,
        mock_series = EXCLUDED.mock_series, term_info = EXCLUDED.term_info, academic_year = EXCLUDED.academic_year,
        head_teacher_name = EXCLUDED.head_teacher_name, attendance_total = EXCLUDED.attendance_total,
        facilitator_mapping = EXCLUDED.facilitator_mapping, grading_remarks = EXCLUDED.grading_remarks,
        custom_subjects = EXCLUDED.custom_subjects, submitted_subjects = EXCLUDED.submitted_subjects,
        updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
