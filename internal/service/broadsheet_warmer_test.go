package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/school-exams-api/internal/dto"
	"github.com/noah-isme/school-exams-api/internal/models"
	"github.com/noah-isme/school-exams-api/pkg/jobs"
)

func startWarmer(t *testing.T, f *examFixture) *BroadsheetWarmer {
	t.Helper()
	warmer := NewBroadsheetWarmer(f.svc, f.students, jobs.QueueConfig{Workers: 1, Logger: zap.NewNop()})
	warmer.Start(context.Background())
	t.Cleanup(warmer.Stop)
	return warmer
}

func (f *examFixture) cacheService() *CacheService {
	return NewCacheService(f.cache, f.metrics, time.Minute, zap.NewNop(), true)
}

// cachedRank reports the rank of studentID on the cached broadsheet of a class.
func (f *examFixture) cachedRank(department, className, studentID string) int {
	var sheet dto.BroadsheetResponse
	if !f.cache.load(broadsheetCacheKey(department, className), &sheet) {
		return 0
	}
	st, ok := sheet.Find(studentID)
	if !ok {
		return 0
	}
	return st.Rank
}

func TestScoreEntryWarmsBroadsheet(t *testing.T) {
	f := newExamFixture(t)
	warmer := startWarmer(t, f)
	scoreSvc := NewScoreService(f.scores, f.students, NewSettingsService(f.settings, nil, nil, nil), f.cacheService(), f.metrics, nil, zap.NewNop()).
		WithWarmer(warmer)

	_, err := scoreSvc.Record(context.Background(), "s4", "Mathematics", ScoreEntryRequest{SectionA: 40, SectionB: 60})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return f.cachedRank(jhs, "Basic 9", "s4") == 1 }, time.Second, 5*time.Millisecond)

	sheet, cached, err := f.svc.Broadsheet(context.Background(), dto.ExamQuery{Department: jhs, ClassName: "Basic 9"})
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, "s4", sheet.Students[0].ID)
}

func TestWarmUpInFlightDuringSecondScoreEntry(t *testing.T) {
	f := newExamFixture(t)
	warmer := startWarmer(t, f)
	scoreSvc := NewScoreService(f.scores, f.students, NewSettingsService(f.settings, nil, nil, nil), f.cacheService(), f.metrics, nil, zap.NewNop()).
		WithWarmer(warmer)
	ctx := context.Background()

	gate := &scoreGate{read: make(chan struct{}), release: make(chan struct{})}
	f.scores.mu.Lock()
	f.scores.gate = gate
	f.scores.mu.Unlock()

	_, err := scoreSvc.Record(ctx, "s4", "Mathematics", ScoreEntryRequest{SectionA: 25, SectionB: 40})
	require.NoError(t, err)
	select {
	case <-gate.read:
	case <-time.After(time.Second):
		t.Fatal("warm-up did not start")
	}

	// The first rebuild holds a snapshot with s4 on 65 while the mark is corrected to 100.
	_, err = scoreSvc.Record(ctx, "s4", "Mathematics", ScoreEntryRequest{SectionA: 40, SectionB: 60})
	require.NoError(t, err)
	close(gate.release)

	require.Eventually(t, func() bool { return f.cachedRank(jhs, "Basic 9", "s4") == 1 }, time.Second, 5*time.Millisecond)

	sheet, cached, err := f.svc.Broadsheet(ctx, dto.ExamQuery{Department: jhs, ClassName: "Basic 9"})
	require.NoError(t, err)
	assert.True(t, cached)
	top := sheet.Students[0]
	assert.Equal(t, "s4", top.ID)
	assert.Equal(t, 100.0, top.TotalScore)
}

func TestRosterChangeWarmsEveryCohort(t *testing.T) {
	f := newExamFixture(t)
	warmer := startWarmer(t, f)
	staffSvc := NewStaffService(f.staff, f.cacheService(), nil, zap.NewNop()).WithWarmer(warmer)

	_, err := staffSvc.Create(context.Background(), StaffRequest{Name: "MRS MENSAH", Role: models.StaffRoleSubjectTeacher, Subjects: []string{"English Language"}})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.cachedRank(jhs, "Basic 9", "s1") == 1 && f.cachedRank(jhs, "Basic 8", "x1") == 1
	}, time.Second, 5*time.Millisecond)
}

func TestStudentTransferWarmsBothClasses(t *testing.T) {
	f := newExamFixture(t)
	warmer := startWarmer(t, f)
	studentSvc := NewStudentService(f.students, f.scores, f.cacheService(), nil, zap.NewNop()).WithWarmer(warmer)

	_, err := studentSvc.Update(context.Background(), "s1", StudentRequest{Name: "Abena", Department: jhs, ClassName: "Basic 8"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.cachedRank(jhs, "Basic 8", "s1") == 1 && f.cachedRank(jhs, "Basic 9", "s2") == 1
	}, time.Second, 5*time.Millisecond)
}

func TestWarmerSkipsEarlyChildhood(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	// Not started, so every accepted schedule request logs an enqueue failure.
	warmer := NewBroadsheetWarmer(nil, nil, jobs.QueueConfig{Logger: zap.New(core)})

	warmer.Schedule("Nursery", "KG 1")
	assert.Equal(t, 0, logs.Len())

	warmer.Schedule(jhs, "Basic 9")
	assert.Equal(t, 1, logs.FilterMessage("broadsheet warm-up not scheduled").Len())
}

func TestBroadsheetWarmerNilSafe(t *testing.T) {
	var w *BroadsheetWarmer
	w.Start(context.Background())
	w.Schedule(jhs, "Basic 9")
	w.ScheduleAll(context.Background())
	w.Stop()
}
