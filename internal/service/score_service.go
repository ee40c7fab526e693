package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exams-api/internal/grading"
	"github.com/noah-isme/school-exams-api/internal/models"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
)

type scoreRepository interface {
	Upsert(ctx context.Context, score *models.StudentScore) error
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type settingsProvider interface {
	Current(ctx context.Context) (*models.GlobalSettings, error)
}

// ScoreEntryRequest is one subject's paper marks. Sections are clamped to their maxima.
type ScoreEntryRequest struct {
	SectionA          float64 `json:"section_a" validate:"gte=0"`
	SectionB          float64 `json:"section_b" validate:"gte=0"`
	FacilitatorRemark string  `json:"facilitator_remark" validate:"max=500"`
}

// ScoreService records subject scores.
type ScoreService struct {
	repo      scoreRepository
	students  studentFinder
	settings  settingsProvider
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	warmer    *BroadsheetWarmer
}

func NewScoreService(repo scoreRepository, students studentFinder, settings settingsProvider, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ScoreService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{repo: repo, students: students, settings: settings, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// WithWarmer rebuilds the affected class broadsheet after each recorded score.
func (s *ScoreService) WithWarmer(w *BroadsheetWarmer) *ScoreService {
	s.warmer = w
	return s
}

// Record composes the section marks into a score and stores it. Subjects listed as
// submitted in the settings are read-only.
func (s *ScoreService) Record(ctx context.Context, studentID, subject string, req ScoreEntryRequest) (*models.StudentScore, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid score payload")
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, mapStudentLookup(err)
	}
	department := grading.Department(student.Department)
	if department.EarlyChildhood() {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedLevel, fmt.Sprintf("%s is not graded by examination", department))
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	if settings.IsSubmitted(subject) {
		return nil, appErrors.Clone(appErrors.ErrFinalized, fmt.Sprintf("scores for %s are finalized", subject))
	}
	if !containsSubject(grading.SubjectList(department, settings.CustomSubjects), subject) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is not offered in %s", subject, department))
	}

	composed := grading.ComposeScore(req.SectionA, req.SectionB, grading.UsesScaledSections(department, subject))
	score := &models.StudentScore{
		StudentID:         student.ID,
		Subject:           subject,
		SectionA:          composed.SectionA,
		SectionB:          composed.SectionB,
		Score:             composed.Total,
		FacilitatorRemark: req.FacilitatorRemark,
	}
	if err := s.repo.Upsert(ctx, score); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save score")
	}

	s.metrics.RecordScoreEntry(subject)
	if err := s.cache.InvalidateBroadsheets(ctx, student.Department); err != nil {
		s.logger.Warn("broadsheet invalidation after score entry", zap.String("student_id", studentID), zap.Error(err))
	} else if s.cache.Enabled() {
		s.warmer.Schedule(student.Department, student.ClassName)
	}
	return score, nil
}

func containsSubject(subjects []string, subject string) bool {
	for _, s := range subjects {
		if s == subject {
			return true
		}
	}
	return false
}
