package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/noah-isme/school-exams-api/internal/models"
)

type fakeStudentRepo struct {
	mu          sync.Mutex
	students    map[string]models.Student
	created     int
	listByClass int
	deleted     []string
	lastFilter  models.StudentFilter
	listTotal   int
	err         error
}

func newFakeStudentRepo(students ...models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: map[string]models.Student{}}
	for _, s := range students {
		repo.students[s.ID] = s
	}
	return repo
}

func (f *fakeStudentRepo) List(_ context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]models.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, f.listTotal, nil
}

func (f *fakeStudentRepo) ListByClass(_ context.Context, department, className string) ([]models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listByClass++
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Student{}
	for _, s := range f.students {
		if s.Department == department && (className == "" || s.ClassName == className) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Name, out[j].Name) < 0 })
	return out, nil
}

func (f *fakeStudentRepo) ListCohorts(context.Context) ([]models.Cohort, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	seen := map[models.Cohort]struct{}{}
	out := []models.Cohort{}
	for _, s := range f.students {
		c := models.Cohort{Department: s.Department, ClassName: s.ClassName}
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Department != out[j].Department {
			return out[i].Department < out[j].Department
		}
		return out[i].ClassName < out[j].ClassName
	})
	return out, nil
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	if student.ID == "" {
		student.ID = "generated"
	}
	f.students[student.ID] = *student
	return nil
}

func (f *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.students[student.ID] = *student
	return nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.students, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// scoreGate pauses the next class score read after it has taken its snapshot.
type scoreGate struct {
	read    chan struct{}
	release chan struct{}
}

type fakeScoreRepo struct {
	mu     sync.Mutex
	scores []models.StudentScore
	err    error
	gate   *scoreGate
}

func (f *fakeScoreRepo) ListByStudent(_ context.Context, studentID string) ([]models.StudentScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.StudentScore{}
	for _, sc := range f.scores {
		if sc.StudentID == studentID {
			out = append(out, sc)
		}
	}
	return out, f.err
}

func (f *fakeScoreRepo) ListByStudents(_ context.Context, ids []string) ([]models.StudentScore, error) {
	f.mu.Lock()
	if f.err != nil {
		f.mu.Unlock()
		return nil, f.err
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := []models.StudentScore{}
	for _, sc := range f.scores {
		if _, ok := wanted[sc.StudentID]; ok {
			out = append(out, sc)
		}
	}
	gate := f.gate
	f.gate = nil
	f.mu.Unlock()

	if gate != nil {
		close(gate.read)
		<-gate.release
	}
	return out, nil
}

func (f *fakeScoreRepo) Upsert(_ context.Context, score *models.StudentScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, sc := range f.scores {
		if sc.StudentID == score.StudentID && sc.Subject == score.Subject {
			f.scores[i] = *score
			return nil
		}
	}
	f.scores = append(f.scores, *score)
	return nil
}

type fakeStaffRepo struct {
	staff []models.StaffMember
	err   error
}

func (f *fakeStaffRepo) List(context.Context) ([]models.StaffMember, error) {
	return f.staff, f.err
}

func (f *fakeStaffRepo) FindByID(_ context.Context, id string) (*models.StaffMember, error) {
	for _, m := range f.staff {
		if m.ID == id {
			member := m
			return &member, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStaffRepo) Create(_ context.Context, member *models.StaffMember) error {
	member.ID = "staff-" + member.Name
	f.staff = append(f.staff, *member)
	return nil
}

func (f *fakeStaffRepo) Update(_ context.Context, member *models.StaffMember) error {
	for i, m := range f.staff {
		if m.ID == member.ID {
			f.staff[i] = *member
		}
	}
	return nil
}

func (f *fakeStaffRepo) Delete(_ context.Context, id string) error {
	for i, m := range f.staff {
		if m.ID == id {
			f.staff = append(f.staff[:i], f.staff[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeSettingsRepo struct {
	settings *models.GlobalSettings
	saved    int
	err      error
}

func (f *fakeSettingsRepo) Get(context.Context) (*models.GlobalSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return nil, sql.ErrNoRows
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Save(_ context.Context, settings *models.GlobalSettings) error {
	f.saved++
	f.settings = settings
	return nil
}
