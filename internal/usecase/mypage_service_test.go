package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

func TestMyPageService_GetTotalLearningStatus(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mockTaskRepo := new(MockTaskRepository)
	service := usecase.NewMyPageService(mockTaskRepo, zap.NewNop())

	mockTaskRepo.On("FindByMenteeAndDate", ctx, int64(10), date).Return([]*model.Task{
		{ID: 1, Subject: model.SubjectMath, Completed: true},
		{ID: 2, Subject: model.SubjectMath},
		{ID: 3, Subject: model.SubjectKorean, Completed: true},
	}, nil)

	statuses, err := service.GetTotalLearningStatus(ctx, 10, date)

	assert.NoError(t, err)
	if assert.Len(t, statuses, 2) {
		assert.Equal(t, model.SubjectKorean, statuses[0].Subject)
		assert.Equal(t, 1, statuses[0].TaskCount)
		assert.Equal(t, 1, statuses[0].CompletedCount)
		assert.Equal(t, model.SubjectMath, statuses[1].Subject)
		assert.Equal(t, 2, statuses[1].TaskCount)
		assert.Equal(t, 1, statuses[1].CompletedCount)
	}
}

func TestMyPageService_GetLearningStatusBySubject(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("splits today from history with unfinished first", func(t *testing.T) {
		mockTaskRepo := new(MockTaskRepository)
		service := usecase.NewMyPageService(mockTaskRepo, zap.NewNop())

		mockTaskRepo.On("FindByMenteeAndDate", ctx, int64(10), date).Return([]*model.Task{
			{ID: 5, Subject: model.SubjectMath, Completed: true},
			{ID: 6, Subject: model.SubjectMath},
			{ID: 7, Subject: model.SubjectEnglish},
		}, nil)
		mockTaskRepo.On("FindPreviousTasks", ctx, int64(10), model.SubjectMath, date).Return([]*model.Task{
			{ID: 4, Subject: model.SubjectMath, Completed: true},
			{ID: 3, Subject: model.SubjectMath},
		}, nil)

		detail, err := service.GetLearningStatusBySubject(ctx, 10, model.SubjectMath, date)

		assert.NoError(t, err)
		if assert.Len(t, detail.TodayTasks, 2) {
			assert.Equal(t, int64(6), detail.TodayTasks[0].ID)
			assert.Equal(t, int64(5), detail.TodayTasks[1].ID)
		}
		if assert.Len(t, detail.HistoryTasks, 2) {
			assert.Equal(t, int64(3), detail.HistoryTasks[0].ID)
			assert.Equal(t, int64(4), detail.HistoryTasks[1].ID)
		}
	})

	t.Run("rejects the legacy RESOURCE subject", func(t *testing.T) {
		mockTaskRepo := new(MockTaskRepository)
		service := usecase.NewMyPageService(mockTaskRepo, zap.NewNop())

		_, err := service.GetLearningStatusBySubject(ctx, 10, model.SubjectResource, date)

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	})
}
