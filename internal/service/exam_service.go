package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exams-api/internal/dto"
	"github.com/noah-isme/school-exams-api/internal/grading"
	"github.com/noah-isme/school-exams-api/internal/models"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
)

type classStudentReader interface {
	ListByClass(ctx context.Context, department, className string) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type classScoreReader interface {
	ListByStudents(ctx context.Context, studentIDs []string) ([]models.StudentScore, error)
}

type rosterReader interface {
	List(ctx context.Context) ([]models.StaffMember, error)
}

// ExamService grades cohorts: it loads a class snapshot, runs the grading engine over it
// and caches the ranked broadsheet.
type ExamService struct {
	students  classStudentReader
	scores    classScoreReader
	staff     rosterReader
	settings  settingsProvider
	cache     *CacheService
	metrics   *MetricsService
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewExamService(students classStudentReader, scores classScoreReader, staff rosterReader, settings settingsProvider, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{
		students:  students,
		scores:    scores,
		staff:     staff,
		settings:  settings,
		cache:     cache,
		metrics:   metrics,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Broadsheet returns the ranked broadsheet of a cohort. The boolean reports a cache hit.
func (s *ExamService) Broadsheet(ctx context.Context, query dto.ExamQuery) (*dto.BroadsheetResponse, bool, error) {
	department, err := s.gradedDepartment(query)
	if err != nil {
		return nil, false, err
	}

	key := broadsheetCacheKey(query.Department, query.ClassName)
	var cached dto.BroadsheetResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	sheet, err := s.rebuild(ctx, department, query.ClassName)
	if err != nil {
		return nil, false, err
	}
	return sheet, false, nil
}

// Rebuild grades the cohort from storage, ignoring any cached copy, and stores the result
// in the cache.
func (s *ExamService) Rebuild(ctx context.Context, query dto.ExamQuery) (*dto.BroadsheetResponse, error) {
	department, err := s.gradedDepartment(query)
	if err != nil {
		return nil, err
	}
	return s.rebuild(ctx, department, query.ClassName)
}

func (s *ExamService) rebuild(ctx context.Context, department grading.Department, className string) (*dto.BroadsheetResponse, error) {
	sheet, err := s.build(ctx, department, className)
	if err != nil {
		return nil, err
	}
	key := broadsheetCacheKey(string(department), className)
	if err := s.cache.Set(ctx, key, sheet, s.cacheTTL); err != nil {
		s.logger.Warn("cache broadsheet", zap.String("key", key), zap.Error(err))
	}
	return sheet, nil
}

func (s *ExamService) gradedDepartment(query dto.ExamQuery) (grading.Department, error) {
	if err := s.validator.Struct(query); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "department is required")
	}
	department := grading.Department(query.Department)
	if !department.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown department")
	}
	if department.EarlyChildhood() {
		return "", appErrors.Clone(appErrors.ErrUnsupportedLevel, fmt.Sprintf("%s is not graded by examination", department))
	}
	return department, nil
}

// ReportCard grades the student's whole class and returns the student's entry.
func (s *ExamService) ReportCard(ctx context.Context, studentID string) (*dto.ReportCardResponse, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, mapStudentLookup(err)
	}

	sheet, _, err := s.Broadsheet(ctx, dto.ExamQuery{Department: student.Department, ClassName: student.ClassName})
	if err != nil {
		return nil, err
	}
	processed, ok := sheet.Find(student.ID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not on broadsheet")
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReportCardResponse{
		School: dto.SchoolHeader{
			SchoolName:      settings.SchoolName,
			ExamTitle:       settings.ExamTitle,
			MockSeries:      settings.MockSeries,
			TermInfo:        settings.TermInfo,
			AcademicYear:    settings.AcademicYear,
			HeadTeacherName: settings.HeadTeacherName,
			AttendanceTotal: settings.AttendanceTotal,
		},
		Department: student.Department,
		ClassName:  student.ClassName,
		ClassSize:  len(sheet.Students),
		Student:    processed,
	}, nil
}

// FacilitatorPerformance summarises each facilitator's grades over the cohort.
func (s *ExamService) FacilitatorPerformance(ctx context.Context, query dto.ExamQuery) (*dto.FacilitatorPerformanceResponse, bool, error) {
	sheet, cached, err := s.Broadsheet(ctx, query)
	if err != nil {
		return nil, false, err
	}
	return &dto.FacilitatorPerformanceResponse{
		Department:   sheet.Department,
		ClassName:    sheet.ClassName,
		Facilitators: grading.ComputeFacilitatorStats(sheet.Students),
	}, cached, nil
}

func (s *ExamService) build(ctx context.Context, department grading.Department, className string) (*dto.BroadsheetResponse, error) {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	engineSettings, err := s.engineSettings(ctx, settings)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	students, err := s.students.ListByClass(ctx, string(department), className)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	ids := make([]string, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	scores, err := s.scores.ListByStudents(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class scores")
	}
	s.metrics.ObserveDBQuery("broadsheet_snapshot", time.Since(start))

	start = time.Now()
	subjects := grading.SubjectList(department, settings.CustomSubjects)
	cohort := toEngineStudents(students, scores)
	stats := grading.ComputeClassStatistics(cohort, subjects)
	ranked := grading.RankStudents(grading.ProcessStudents(stats, cohort, subjects, engineSettings))
	s.metrics.ObserveBroadsheet(string(department), len(ranked), time.Since(start))

	s.logger.Debug("broadsheet built",
		zap.String("department", string(department)),
		zap.String("class", className),
		zap.Int("students", len(ranked)),
		zap.Int("subjects", len(subjects)))

	return &dto.BroadsheetResponse{
		Department:  string(department),
		ClassName:   className,
		Subjects:    subjects,
		Statistics:  stats,
		Students:    ranked,
		GeneratedAt: s.now().UTC(),
	}, nil
}

func (s *ExamService) engineSettings(ctx context.Context, settings *models.GlobalSettings) (grading.Settings, error) {
	facilitators, err := settings.FacilitatorMap()
	if err != nil {
		return grading.Settings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt facilitator mapping")
	}
	labels, err := settings.RemarkLabels()
	if err != nil {
		return grading.Settings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt grading remarks")
	}
	roster, err := s.staff.List(ctx)
	if err != nil {
		return grading.Settings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	staff := make([]grading.StaffMember, len(roster))
	for i, member := range roster {
		staff[i] = grading.StaffMember{Name: member.Name, Subjects: member.Subjects}
	}
	return grading.Settings{
		FacilitatorMap: facilitators,
		RemarkLabels:   grading.RemarkLabelsFromMap(labels),
		Staff:          staff,
	}, nil
}

func toEngineStudents(students []models.Student, scores []models.StudentScore) []grading.Student {
	byStudent := make(map[string][]models.StudentScore, len(students))
	for _, sc := range scores {
		byStudent[sc.StudentID] = append(byStudent[sc.StudentID], sc)
	}

	cohort := make([]grading.Student, len(students))
	for i, st := range students {
		entry := grading.Student{
			ID:             st.ID,
			Name:           st.Name,
			Scores:         map[string]float64{},
			SubjectRemarks: map[string]string{},
			OverallRemark:  st.OverallRemark,
			FinalRemark:    st.FinalRemark,
			Recommendation: st.Recommendation,
			Attendance:     strconv.Itoa(st.Attendance),
		}
		for _, sc := range byStudent[st.ID] {
			entry.Scores[sc.Subject] = sc.Score
			if sc.FacilitatorRemark != "" {
				entry.SubjectRemarks[sc.Subject] = sc.FacilitatorRemark
			}
		}
		cohort[i] = entry
	}
	return cohort
}
