package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exams-api/internal/models"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
)

func newScoreFixture(settings *models.GlobalSettings) (*ScoreService, *fakeScoreRepo, *MetricsService) {
	students := newFakeStudentRepo(
		models.Student{ID: "s1", Name: "Ama", Department: jhs, ClassName: "Basic 9"},
		models.Student{ID: "s2", Name: "Kojo", Department: "Upper Basic School", ClassName: "Basic 5"},
		models.Student{ID: "d1", Name: "Baby", Department: "Daycare", ClassName: "Creche"},
	)
	scores := &fakeScoreRepo{}
	metrics := NewMetricsService()
	settingsSvc := NewSettingsService(&fakeSettingsRepo{settings: settings}, nil, nil, nil)
	return NewScoreService(scores, students, settingsSvc, nil, metrics, nil, zap.NewNop()), scores, metrics
}

func TestScoreServiceRecord(t *testing.T) {
	svc, repo, _ := newScoreFixture(nil)

	score, err := svc.Record(context.Background(), "s2", "Science", ScoreEntryRequest{SectionA: 45, SectionB: 30, FacilitatorRemark: "Good"})
	require.NoError(t, err)
	assert.Equal(t, 40.0, score.SectionA)
	assert.Equal(t, 70.0, score.Score)
	require.Len(t, repo.scores, 1)
	assert.Equal(t, "Good", repo.scores[0].FacilitatorRemark)
}

func TestScoreServiceRecordScalesJuniorHighScience(t *testing.T) {
	svc, _, _ := newScoreFixture(nil)

	score, err := svc.Record(context.Background(), "s1", "Science", ScoreEntryRequest{SectionA: 35, SectionB: 70})
	require.NoError(t, err)
	assert.Equal(t, 70.0, score.SectionB)
	assert.Equal(t, 75.0, score.Score)
}

func TestScoreServiceRecordFinalized(t *testing.T) {
	settings := DefaultSettings()
	settings.SubmittedSubjects = []string{"Mathematics"}
	svc, repo, _ := newScoreFixture(settings)

	_, err := svc.Record(context.Background(), "s1", "Mathematics", ScoreEntryRequest{SectionA: 10, SectionB: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrFinalized))
	assert.Empty(t, repo.scores)
}

func TestScoreServiceRecordCustomSubject(t *testing.T) {
	settings := DefaultSettings()
	settings.CustomSubjects = []string{"Robotics"}
	svc, _, _ := newScoreFixture(settings)

	_, err := svc.Record(context.Background(), "s1", "Robotics", ScoreEntryRequest{SectionA: 20, SectionB: 20})
	require.NoError(t, err)

	_, err = svc.Record(context.Background(), "s1", "Latin", ScoreEntryRequest{SectionA: 20, SectionB: 20})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScoreServiceRecordRejections(t *testing.T) {
	svc, _, _ := newScoreFixture(nil)
	ctx := context.Background()

	_, err := svc.Record(ctx, "missing", "Mathematics", ScoreEntryRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Record(ctx, "d1", "Mathematics", ScoreEntryRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrUnsupportedLevel))

	_, err = svc.Record(ctx, "s1", "Mathematics", ScoreEntryRequest{SectionA: -1})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Record(ctx, "s1", "History", ScoreEntryRequest{SectionA: 1})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
