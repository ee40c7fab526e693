package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exams-api/internal/grading"
	"github.com/noah-isme/school-exams-api/internal/models"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
)

type settingsRepository interface {
	Get(ctx context.Context) (*models.GlobalSettings, error)
	Save(ctx context.Context, settings *models.GlobalSettings) error
}

// UpdateSettingsRequest replaces the global settings.
type UpdateSettingsRequest struct {
	SchoolName         string            `json:"school_name" validate:"required,max=200"`
	ExamTitle          string            `json:"exam_title" validate:"max=200"`
	MockSeries         string            `json:"mock_series" validate:"max=20"`
	TermInfo           string            `json:"term_info" validate:"max=50"`
	AcademicYear       string            `json:"academic_year" validate:"max=20"`
	HeadTeacherName    string            `json:"head_teacher_name" validate:"max=200"`
	AttendanceTotal    int               `json:"attendance_total" validate:"gte=0"`
	FacilitatorMapping map[string]string `json:"facilitator_mapping"`
	GradingRemarks     map[string]string `json:"grading_remarks"`
	CustomSubjects     []string          `json:"custom_subjects" validate:"dive,required"`
	SubmittedSubjects  []string          `json:"submitted_subjects" validate:"dive,required"`
}

// SettingsService reads and replaces the global settings row.
type SettingsService struct {
	repo      settingsRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	warmer    *BroadsheetWarmer
}

func NewSettingsService(repo settingsRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// WithWarmer rebuilds every cohort's broadsheet after the settings change.
func (s *SettingsService) WithWarmer(w *BroadsheetWarmer) *SettingsService {
	s.warmer = w
	return s
}

// DefaultSettings is served until the settings are first saved.
func DefaultSettings() *models.GlobalSettings {
	facilitators, _ := models.EncodeStringMap(grading.DefaultFacilitators)
	labels := make(map[string]string, len(grading.DefaultRemarkLabels))
	for g, label := range grading.DefaultRemarkLabels {
		labels[string(g)] = label
	}
	remarks, _ := models.EncodeStringMap(labels)
	return &models.GlobalSettings{
		ID:                 models.GlobalSettingsID,
		SchoolName:         "UNITED BAYLOR ACADEMY",
		ExamTitle:          "2ND MOCK 2025 BROAD SHEET EXAMINATION",
		MockSeries:         "2",
		TermInfo:           "TERM 2",
		AcademicYear:       "2024/2025",
		HeadTeacherName:    "HEADMASTER NAME",
		AttendanceTotal:    60,
		FacilitatorMapping: facilitators,
		GradingRemarks:     remarks,
		CustomSubjects:     []string{},
		SubmittedSubjects:  []string{},
	}
}

// Current returns the saved settings, or DefaultSettings before the first save.
func (s *SettingsService) Current(ctx context.Context) (*models.GlobalSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultSettings(), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return settings, nil
}

// Update replaces the settings and drops every cached broadsheet.
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*models.GlobalSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	for grade := range req.GradingRemarks {
		if grading.Grade(grade).Value() == 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown grade %q in grading remarks", grade))
		}
	}

	facilitators, err := models.EncodeStringMap(req.FacilitatorMapping)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid facilitator mapping")
	}
	remarks, err := models.EncodeStringMap(req.GradingRemarks)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grading remarks")
	}

	settings := &models.GlobalSettings{
		SchoolName:         req.SchoolName,
		ExamTitle:          req.ExamTitle,
		MockSeries:         req.MockSeries,
		TermInfo:           req.TermInfo,
		AcademicYear:       req.AcademicYear,
		HeadTeacherName:    req.HeadTeacherName,
		AttendanceTotal:    req.AttendanceTotal,
		FacilitatorMapping: facilitators,
		GradingRemarks:     remarks,
		CustomSubjects:     nonNil(req.CustomSubjects),
		SubmittedSubjects:  nonNil(req.SubmittedSubjects),
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save settings")
	}
	if err := s.cache.InvalidateBroadsheets(ctx, ""); err != nil {
		s.logger.Warn("broadsheet invalidation after settings update", zap.Error(err))
	} else if s.cache.Enabled() {
		s.warmer.ScheduleAll(ctx)
	}
	return settings, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
