package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

func newMentorService(t *testing.T) (*usecase.MentorTaskService, *MockTaskRepository, *MockUserRepository, *MockFileRepository, *MockNotifier) {
	t.Helper()
	mockTaskRepo := new(MockTaskRepository)
	mockUserRepo := new(MockUserRepository)
	mockFileRepo := new(MockFileRepository)
	mockNotifier := new(MockNotifier)
	service := usecase.NewMentorTaskService(mockTaskRepo, mockUserRepo, mockFileRepo, mockNotifier, zap.NewNop())
	return service, mockTaskRepo, mockUserRepo, mockFileRepo, mockNotifier
}

func assignedMentee(menteeID, mentorID int64) *model.User {
	return &model.User{ID: menteeID, MentorID: &mentorID, Role: model.RoleMentee, Name: "김민수"}
}

func TestMentorTaskService_CreateTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one task per date and name", func(t *testing.T) {
		service, mockTaskRepo, mockUserRepo, _, _ := newMentorService(t)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)
		mockTaskRepo.On("CreateAll", ctx, mock.MatchedBy(func(tasks []*model.Task) bool {
			if len(tasks) != 4 {
				return false
			}
			for _, task := range tasks {
				if task.CreatedBy != model.RoleMentor || task.DueDate == nil {
					return false
				}
			}
			return true
		})).Return(nil)

		tasks, err := service.CreateTasks(ctx, 1, 10, usecase.MentorTaskCreateCommand{
			Subject:     model.SubjectMath,
			Names:       []string{"미적분 3단원", "확률과 통계 복습"},
			DueDates:    []time.Time{time.Now().AddDate(0, 0, 1), time.Now().AddDate(0, 0, 2)},
			GoalMinutes: 90,
		})

		assert.NoError(t, err)
		assert.Len(t, tasks, 4)
		mockTaskRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate dates", func(t *testing.T) {
		service, mockTaskRepo, mockUserRepo, _, _ := newMentorService(t)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)

		d := time.Now().AddDate(0, 0, 1)
		_, err := service.CreateTasks(ctx, 1, 10, usecase.MentorTaskCreateCommand{
			Subject:     model.SubjectMath,
			Names:       []string{"복습"},
			DueDates:    []time.Time{d, d},
			GoalMinutes: 60,
		})

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		mockTaskRepo.AssertNotCalled(t, "CreateAll", mock.Anything, mock.Anything)
	})

	t.Run("rejects a past date", func(t *testing.T) {
		service, _, mockUserRepo, _, _ := newMentorService(t)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)

		_, err := service.CreateTasks(ctx, 1, 10, usecase.MentorTaskCreateCommand{
			Subject:     model.SubjectMath,
			Names:       []string{"복습"},
			DueDates:    []time.Time{time.Now().AddDate(0, 0, -1)},
			GoalMinutes: 60,
		})

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("rejects a mentee assigned to another mentor", func(t *testing.T) {
		service, _, mockUserRepo, _, _ := newMentorService(t)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 99), nil)

		_, err := service.CreateTasks(ctx, 1, 10, usecase.MentorTaskCreateCommand{
			Subject:     model.SubjectMath,
			Names:       []string{"복습"},
			DueDates:    []time.Time{time.Now().AddDate(0, 0, 1)},
			GoalMinutes: 60,
		})

		assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
	})
}

func supervisedTask(menteeID, mentorID int64) *model.Task {
	return &model.Task{
		ID:       1,
		MenteeID: menteeID,
		Mentee:   assignedMentee(menteeID, mentorID),
		Name:     "영어 독해",
		Subject:  model.SubjectEnglish,
		ProofShots: []model.ProofShot{{
			ID:     5,
			TaskID: 1,
			Comments: []model.Comment{
				{ID: 100, ProofShotID: 5, Type: model.CommentTypeQuestion, Content: "이 단어 뜻이 뭔가요?",
					RegisterStatus: model.RegisterStatusConfirmed, ReadByMentee: true,
					Annotation: model.Annotation{Number: 1, PercentX: 10, PercentY: 20}},
			},
		}},
	}
}

func TestMentorTaskService_SaveFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("registers feedback and notifies the mentee", func(t *testing.T) {
		service, mockTaskRepo, mockUserRepo, _, mockNotifier := newMentorService(t)

		task := supervisedTask(10, 1)
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)
		mockTaskRepo.On("DeleteFeedbackComments", ctx, int64(1), false).Return(nil)
		mockTaskRepo.On("SaveGeneralComment", ctx, mock.MatchedBy(func(gc *model.GeneralComment) bool {
			return gc.TaskID == 1 && gc.Text.Final != nil && *gc.Text.Final == "전반적으로 좋았어요" && gc.Text.Draft == nil
		})).Return(nil)
		mockTaskRepo.On("CreateComments", ctx, mock.MatchedBy(func(comments []model.Comment) bool {
			return len(comments) == 2 &&
				comments[0].RegisterStatus == model.RegisterStatusConfirmed &&
				comments[0].Annotation.Number == 1 &&
				comments[1].Annotation.Number == 2
		})).Return(nil)
		mockTaskRepo.On("UpdateComment", ctx, mock.MatchedBy(func(c *model.Comment) bool {
			return c.ID == 100 && c.Answer.Final != nil && *c.Answer.Final == "사전을 찾아보세요"
		})).Return(nil)
		mockUserRepo.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, Name: "박지훈", Role: model.RoleMentor}, nil)
		mockNotifier.On("Notify", ctx, task.Mentee, mock.MatchedBy(func(n model.Notification) bool {
			return n.Type == model.NotificationTypeFeedback &&
				n.Title == "피드백 도착" &&
				n.Message == "할 일 '영어 독해'에 멘토 박지훈의 피드백이 달렸어요!" &&
				n.TaskID != nil && *n.TaskID == 1
		})).Return(nil)

		err := service.SaveFeedback(ctx, 1, 1, usecase.FeedbackCommand{
			GeneralComment: "전반적으로 좋았어요",
			ProofShots: []usecase.ProofShotFeedback{{
				ProofShotID: 5,
				Comments: []usecase.FeedbackCommentInput{
					{Content: "여기 해석이 틀렸어요", Starred: true, PercentX: 15, PercentY: 25},
					{Content: "문장 구조를 다시 보세요", PercentX: 35, PercentY: 45},
				},
			}},
			Answers: []usecase.AnswerInput{{CommentID: 100, Content: "사전을 찾아보세요"}},
		})

		assert.NoError(t, err)
		mockTaskRepo.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("requires a general comment", func(t *testing.T) {
		service, mockTaskRepo, _, _, mockNotifier := newMentorService(t)

		task := supervisedTask(10, 1)
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)

		err := service.SaveFeedback(ctx, 1, 1, usecase.FeedbackCommand{GeneralComment: "  "})

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requires feedback content", func(t *testing.T) {
		service, mockTaskRepo, _, _, _ := newMentorService(t)

		task := supervisedTask(10, 1)
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)
		mockTaskRepo.On("DeleteFeedbackComments", ctx, int64(1), false).Return(nil)
		mockTaskRepo.On("SaveGeneralComment", ctx, mock.Anything).Return(nil)

		err := service.SaveFeedback(ctx, 1, 1, usecase.FeedbackCommand{
			GeneralComment: "코멘트",
			ProofShots: []usecase.ProofShotFeedback{{
				ProofShotID: 5,
				Comments:    []usecase.FeedbackCommentInput{{Content: "   "}},
			}},
		})

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("fails on an unknown proof shot", func(t *testing.T) {
		service, mockTaskRepo, _, _, _ := newMentorService(t)

		task := supervisedTask(10, 1)
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)
		mockTaskRepo.On("DeleteFeedbackComments", ctx, int64(1), false).Return(nil)
		mockTaskRepo.On("SaveGeneralComment", ctx, mock.Anything).Return(nil)

		err := service.SaveFeedback(ctx, 1, 1, usecase.FeedbackCommand{
			GeneralComment: "코멘트",
			ProofShots: []usecase.ProofShotFeedback{{
				ProofShotID: 999,
				Comments:    []usecase.FeedbackCommentInput{{Content: "좋아요"}},
			}},
		})

		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	})
}

func TestMentorTaskService_SaveDraftFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("only clears draft comments and keeps registered feedback", func(t *testing.T) {
		service, mockTaskRepo, _, _, mockNotifier := newMentorService(t)

		task := supervisedTask(10, 1)
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)
		mockTaskRepo.On("DeleteFeedbackComments", ctx, int64(1), true).Return(nil)
		mockTaskRepo.On("SaveGeneralComment", ctx, mock.MatchedBy(func(gc *model.GeneralComment) bool {
			return gc.Text.Draft != nil && *gc.Text.Draft == "임시 코멘트" && gc.Text.Final == nil
		})).Return(nil)
		mockTaskRepo.On("CreateComments", ctx, mock.MatchedBy(func(comments []model.Comment) bool {
			return len(comments) == 1 && comments[0].RegisterStatus == model.RegisterStatusTemporary
		})).Return(nil)

		err := service.SaveDraftFeedback(ctx, 1, 1, usecase.FeedbackCommand{
			GeneralComment: "임시 코멘트",
			ProofShots: []usecase.ProofShotFeedback{{
				ProofShotID: 5,
				Comments:    []usecase.FeedbackCommentInput{{Content: "작성 중"}},
			}},
		})

		assert.NoError(t, err)
		mockTaskRepo.AssertExpectations(t)
		mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("skips the general comment row when blank and absent", func(t *testing.T) {
		service, mockTaskRepo, _, _, _ := newMentorService(t)

		task := supervisedTask(10, 1)
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)
		mockTaskRepo.On("DeleteFeedbackComments", ctx, int64(1), true).Return(nil)
		mockTaskRepo.On("CreateComments", ctx, mock.Anything).Return(nil)

		err := service.SaveDraftFeedback(ctx, 1, 1, usecase.FeedbackCommand{GeneralComment: ""})

		assert.NoError(t, err)
		mockTaskRepo.AssertNotCalled(t, "SaveGeneralComment", mock.Anything, mock.Anything)
	})
}

func TestMentorTaskService_DeleteFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("clears comments and the general comment", func(t *testing.T) {
		service, mockTaskRepo, _, _, _ := newMentorService(t)

		task := supervisedTask(10, 1)
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)
		mockTaskRepo.On("DeleteFeedbackComments", ctx, int64(1), false).Return(nil)
		mockTaskRepo.On("DeleteGeneralComment", ctx, int64(1)).Return(nil)

		err := service.DeleteFeedback(ctx, 1, 1)

		assert.NoError(t, err)
		mockTaskRepo.AssertExpectations(t)
	})
}

func TestMentorTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a mentee-created task as a state conflict", func(t *testing.T) {
		service, mockTaskRepo, _, _, _ := newMentorService(t)

		task := supervisedTask(10, 1)
		task.CreatedBy = model.RoleMentee
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)

		err := service.DeleteTask(ctx, 1, 1)

		assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
		mockTaskRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes a mentor-assigned task", func(t *testing.T) {
		service, mockTaskRepo, _, _, _ := newMentorService(t)

		task := supervisedTask(10, 1)
		task.CreatedBy = model.RoleMentor
		mockTaskRepo.On("FindByID", ctx, int64(1)).Return(task, nil)
		mockTaskRepo.On("Delete", ctx, int64(1)).Return(nil)

		err := service.DeleteTask(ctx, 1, 1)

		assert.NoError(t, err)
		mockTaskRepo.AssertExpectations(t)
	})
}

func TestMentorTaskService_GetMenteeTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the assigned mentee's tasks for the period", func(t *testing.T) {
		service, mockTaskRepo, mockUserRepo, _, _ := newMentorService(t)

		start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)
		mockTaskRepo.On("FindByMenteeBetween", ctx, int64(10), start, end).
			Return([]*model.Task{{ID: 1, MenteeID: 10}}, nil)

		tasks, err := service.GetMenteeTasks(ctx, 1, 10, start, end)

		assert.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("rejects an inverted period", func(t *testing.T) {
		service, mockTaskRepo, mockUserRepo, _, _ := newMentorService(t)

		start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)

		_, err := service.GetMenteeTasks(ctx, 1, 10, start, end)

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		mockTaskRepo.AssertNotCalled(t, "FindByMenteeBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a mentee assigned to another mentor", func(t *testing.T) {
		service, _, mockUserRepo, _, _ := newMentorService(t)

		start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 2), nil)

		_, err := service.GetMenteeTasks(ctx, 1, 10, start, start)

		assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
	})
}
