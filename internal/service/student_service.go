package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exams-api/internal/grading"
	"github.com/noah-isme/school-exams-api/internal/models"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type studentScoreLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentScore, error)
}

// StudentRequest carries enrolment bio-data and the class teacher's remark fields.
type StudentRequest struct {
	Name           string     `json:"name" validate:"required,max=200"`
	Department     string     `json:"department" validate:"required"`
	ClassName      string     `json:"class_name" validate:"required,max=50"`
	Gender         string     `json:"gender" validate:"omitempty,oneof=Male Female"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Guardian       string     `json:"guardian" validate:"max=200"`
	Contact        string     `json:"contact" validate:"max=50"`
	Address        string     `json:"address" validate:"max=300"`
	Attendance     int        `json:"attendance" validate:"gte=0"`
	OverallRemark  string     `json:"overall_remark"`
	FinalRemark    string     `json:"final_remark"`
	Recommendation string     `json:"recommendation"`
}

// StudentService handles enrolment records.
type StudentService struct {
	repo      studentRepository
	scores    studentScoreLister
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	warmer    *BroadsheetWarmer
}

func NewStudentService(repo studentRepository, scores studentScoreLister, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, scores: scores, cache: cache, validator: validate, logger: logger}
}

// List returns one page of students and its pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a student with every recorded score.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	scores, err := s.scores.ListByStudent(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scores")
	}
	return &models.StudentDetail{Student: *student, Scores: scores}, nil
}

// WithWarmer rebuilds the broadsheets of classes whose membership changed.
func (s *StudentService) WithWarmer(w *BroadsheetWarmer) *StudentService {
	s.warmer = w
	return s
}

func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	student := &models.Student{}
	applyStudentRequest(student, req)
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.invalidate(ctx, student.Department)
	s.warm(student.Department, student.ClassName)
	return student, nil
}

func (s *StudentService) Update(ctx context.Context, id string, req StudentRequest) (*models.Student, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := models.Cohort{Department: student.Department, ClassName: student.ClassName}
	applyStudentRequest(student, req)
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.invalidate(ctx, student.Department)
	if previous.Department != student.Department {
		s.invalidate(ctx, previous.Department)
	}
	s.warm(student.Department, student.ClassName)
	if previous.Department != student.Department || previous.ClassName != student.ClassName {
		s.warm(previous.Department, previous.ClassName)
	}
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id string) error {
	student, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.invalidate(ctx, student.Department)
	s.warm(student.Department, student.ClassName)
	return nil
}

func (s *StudentService) find(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStudentLookup(err)
	}
	return student, nil
}

func (s *StudentService) validate(req StudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !grading.Department(req.Department).Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown department")
	}
	return nil
}

func (s *StudentService) invalidate(ctx context.Context, department string) {
	if err := s.cache.InvalidateBroadsheets(ctx, department); err != nil {
		s.logger.Warn("broadsheet invalidation failed", zap.String("department", department), zap.Error(err))
	}
}

func (s *StudentService) warm(department, className string) {
	if s.cache.Enabled() {
		s.warmer.Schedule(department, className)
	}
}

func applyStudentRequest(student *models.Student, req StudentRequest) {
	student.Name = strings.TrimSpace(req.Name)
	student.Department = req.Department
	student.ClassName = strings.TrimSpace(req.ClassName)
	student.Gender = req.Gender
	student.DateOfBirth = req.DateOfBirth
	student.Guardian = req.Guardian
	student.Contact = req.Contact
	student.Address = req.Address
	student.Attendance = req.Attendance
	student.OverallRemark = req.OverallRemark
	student.FinalRemark = req.FinalRemark
	student.Recommendation = req.Recommendation
}
