package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

func TestDashboardService_GetFeedbackRequired(t *testing.T) {
	ctx := context.Background()

	mockTaskRepo := new(MockTaskRepository)
	mockUserRepo := new(MockUserRepository)
	service := usecase.NewDashboardService(mockTaskRepo, mockUserRepo, zap.NewNop())

	mentees := []*model.User{
		{ID: 10, Name: "김민수"},
		{ID: 11, Name: "이서연"},
	}
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	mockUserRepo.On("FindMenteesByMentor", ctx, int64(1)).Return(mentees, nil)
	mockTaskRepo.On("CountFeedbackRequired", ctx, []int64{10, 11}, date).Return([]repository.MenteeTaskCount{
		{MenteeID: 11, Count: 2},
	}, nil)

	summaries, err := service.GetFeedbackRequired(ctx, 1, date)

	assert.NoError(t, err)
	if assert.Len(t, summaries, 1) {
		assert.Equal(t, int64(11), summaries[0].Mentee.ID)
		assert.Equal(t, int64(2), summaries[0].Count)
	}
	mockTaskRepo.AssertExpectations(t)
}

func TestDashboardService_GetPendingUploads(t *testing.T) {
	ctx := context.Background()

	mockTaskRepo := new(MockTaskRepository)
	mockUserRepo := new(MockUserRepository)
	service := usecase.NewDashboardService(mockTaskRepo, mockUserRepo, zap.NewNop())

	mentees := []*model.User{
		{ID: 10, Name: "김민수"},
		{ID: 11, Name: "이서연"},
	}
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	mockUserRepo.On("FindMenteesByMentor", ctx, int64(1)).Return(mentees, nil)
	mockTaskRepo.On("FindPendingUploadMentees", ctx, []int64{10, 11}, date).Return([]int64{10}, nil)

	pending, err := service.GetPendingUploads(ctx, 1, date)

	assert.NoError(t, err)
	if assert.Len(t, pending, 1) {
		assert.Equal(t, int64(10), pending[0].ID)
	}
}

func TestDashboardService_GetMenteeManagement(t *testing.T) {
	ctx := context.Background()

	mockTaskRepo := new(MockTaskRepository)
	mockUserRepo := new(MockUserRepository)
	service := usecase.NewDashboardService(mockTaskRepo, mockUserRepo, zap.NewNop())

	mentees := []*model.User{
		{ID: 10, Name: "김민수"},
		{ID: 11, Name: "이서연"},
	}
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	recent := &model.Task{ID: 7, MenteeID: 10, Name: "미적분 3단원"}
	mockUserRepo.On("FindMenteesByMentor", ctx, int64(1)).Return(mentees, nil)
	mockTaskRepo.On("FindPendingUploadMentees", ctx, []int64{10, 11}, date).Return([]int64{11}, nil)
	mockTaskRepo.On("FindMostRecentByMentees", ctx, []int64{10, 11}).Return([]*model.Task{recent}, nil)

	list, err := service.GetMenteeManagement(ctx, 1, date)

	assert.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 1, list.Submitted)
	if assert.Len(t, list.Entries, 2) {
		assert.True(t, list.Entries[0].Submitted)
		assert.Equal(t, recent, list.Entries[0].RecentTask)
		assert.False(t, list.Entries[1].Submitted)
		assert.Nil(t, list.Entries[1].RecentTask)
	}
}
