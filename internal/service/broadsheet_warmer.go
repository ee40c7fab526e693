package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/school-exams-api/internal/dto"
	"github.com/noah-isme/school-exams-api/internal/grading"
	"github.com/noah-isme/school-exams-api/internal/models"
	"github.com/noah-isme/school-exams-api/pkg/jobs"
)

type broadsheetRebuilder interface {
	Rebuild(ctx context.Context, query dto.ExamQuery) (*dto.BroadsheetResponse, error)
}

type cohortLister interface {
	ListCohorts(ctx context.Context) ([]models.Cohort, error)
}

// BroadsheetWarmer rebuilds invalidated broadsheets in the background so the next read is
// a cache hit. Rebuilds of one cohort run one at a time, so a rebuild that started before a
// later write can never overwrite the rebuild that follows it.
type BroadsheetWarmer struct {
	exams   broadsheetRebuilder
	cohorts cohortLister
	queue   *jobs.Queue
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewBroadsheetWarmer(exams broadsheetRebuilder, cohorts cohortLister, cfg jobs.QueueConfig) *BroadsheetWarmer {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	w := &BroadsheetWarmer{exams: exams, cohorts: cohorts, logger: cfg.Logger, locks: make(map[string]*sync.Mutex)}
	w.queue = jobs.NewQueue("broadsheet-warmer", w.handle, cfg)
	return w
}

func (w *BroadsheetWarmer) Start(ctx context.Context) {
	if w == nil {
		return
	}
	w.queue.Start(ctx)
}

func (w *BroadsheetWarmer) Stop() {
	if w == nil {
		return
	}
	w.queue.Stop()
}

// Schedule queues a rebuild of the department/class broadsheet. Repeated requests for the
// same cohort collapse into one while it waits.
func (w *BroadsheetWarmer) Schedule(department, className string) {
	if w == nil || grading.Department(department).EarlyChildhood() {
		return
	}
	query := dto.ExamQuery{Department: department, ClassName: className}
	if _, err := w.queue.Enqueue(jobs.Job{Key: broadsheetCacheKey(department, className), Payload: query}); err != nil {
		w.logger.Warn("broadsheet warm-up not scheduled", zap.String("department", department), zap.String("class", className), zap.Error(err))
	}
}

// ScheduleAll queues a rebuild of every cohort with enrolled students.
func (w *BroadsheetWarmer) ScheduleAll(ctx context.Context) {
	if w == nil || w.cohorts == nil {
		return
	}
	cohorts, err := w.cohorts.ListCohorts(ctx)
	if err != nil {
		w.logger.Warn("broadsheet warm-up cohorts unavailable", zap.Error(err))
		return
	}
	for _, c := range cohorts {
		w.Schedule(c.Department, c.ClassName)
	}
}

func (w *BroadsheetWarmer) handle(ctx context.Context, job jobs.Job) error {
	query, ok := job.Payload.(dto.ExamQuery)
	if !ok {
		return errors.New("unexpected warm-up payload")
	}

	lock := w.lockFor(job.Key)
	lock.Lock()
	defer lock.Unlock()

	if _, err := w.exams.Rebuild(ctx, query); err != nil {
		return err
	}
	w.logger.Debug("broadsheet warmed", zap.String("department", query.Department), zap.String("class", query.ClassName))
	return nil
}

func (w *BroadsheetWarmer) lockFor(key string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	lock, ok := w.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		w.locks[key] = lock
	}
	return lock
}
