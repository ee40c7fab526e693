package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exams-api/internal/models"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
)

type staffRepository interface {
	List(ctx context.Context) ([]models.StaffMember, error)
	FindByID(ctx context.Context, id string) (*models.StaffMember, error)
	Create(ctx context.Context, member *models.StaffMember) error
	Update(ctx context.Context, member *models.StaffMember) error
	Delete(ctx context.Context, id string) error
}

// StaffRequest describes a roster entry.
type StaffRequest struct {
	Name          string             `json:"name" validate:"required,max=200"`
	Role          models.StaffRole   `json:"role" validate:"required"`
	Status        models.StaffStatus `json:"status"`
	Subjects      []string           `json:"subjects" validate:"dive,required"`
	Contact       string             `json:"contact" validate:"max=50"`
	Qualification string             `json:"qualification" validate:"max=200"`
}

// StaffService maintains the facilitator roster. Roster edits change facilitator
// attribution, so every cached broadsheet is dropped.
type StaffService struct {
	repo      staffRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	warmer    *BroadsheetWarmer
}

func NewStaffService(repo staffRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// WithWarmer rebuilds every cohort's broadsheet after roster changes.
func (s *StaffService) WithWarmer(w *BroadsheetWarmer) *StaffService {
	s.warmer = w
	return s
}

// List returns the roster in resolution order.
func (s *StaffService) List(ctx context.Context) ([]models.StaffMember, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	return staff, nil
}

func (s *StaffService) Create(ctx context.Context, req StaffRequest) (*models.StaffMember, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}
	member := &models.StaffMember{}
	applyStaffRequest(member, req)
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff member")
	}
	s.invalidate(ctx)
	return member, nil
}

func (s *StaffService) Update(ctx context.Context, id string, req StaffRequest) (*models.StaffMember, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff member")
	}
	applyStaffRequest(member, req)
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update staff member")
	}
	s.invalidate(ctx)
	return member, nil
}

func (s *StaffService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete staff member")
	}
	s.invalidate(ctx)
	return nil
}

func (s *StaffService) validate(req *StaffRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	switch req.Role {
	case models.StaffRoleClassTeacher, models.StaffRoleSubjectTeacher, models.StaffRoleBoth:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown staff role")
	}
	switch req.Status {
	case "":
		req.Status = models.StaffStatusFullTime
	case models.StaffStatusFullTime, models.StaffStatusPartTime:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown staff status")
	}
	return nil
}

func (s *StaffService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateBroadsheets(ctx, ""); err != nil {
		s.logger.Warn("broadsheet invalidation after roster change", zap.Error(err))
		return
	}
	if s.cache.Enabled() {
		s.warmer.ScheduleAll(ctx)
	}
}

func applyStaffRequest(member *models.StaffMember, req StaffRequest) {
	member.Name = strings.TrimSpace(req.Name)
	member.Role = req.Role
	member.Status = req.Status
	member.Subjects = nonNil(req.Subjects)
	member.Contact = req.Contact
	member.Qualification = req.Qualification
}
