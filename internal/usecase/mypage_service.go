package usecase

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
)

// SubjectLearningStatus counts one subject's tasks for the day.
type SubjectLearningStatus struct {
	Subject        model.Subject
	TaskCount      int
	CompletedCount int
}

// SubjectLearningDetail is the per-subject drill-down: today's tasks
// plus everything the mentee did before in that subject.
type SubjectLearningDetail struct {
	TodayTasks   []*model.Task
	HistoryTasks []*model.Task
}

// MyPageService serves the mentee's own learning overview.
type MyPageService struct {
	taskRepo repository.TaskRepository
	logger   *zap.Logger
}

// NewMyPageService creates a new my-page service
func NewMyPageService(taskRepo repository.TaskRepository, logger *zap.Logger) *MyPageService {
	return &MyPageService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// GetTotalLearningStatus summarizes the date's tasks per subject.
// Subjects with nothing scheduled are omitted.
func (s *MyPageService) GetTotalLearningStatus(ctx context.Context, menteeID int64, date time.Time) ([]SubjectLearningStatus, error) {
	tasks, err := s.taskRepo.FindByMenteeAndDate(ctx, menteeID, date)
	if err != nil {
		return nil, err
	}

	bySubject := make(map[model.Subject]*SubjectLearningStatus)
	for _, task := range tasks {
		status, ok := bySubject[task.Subject]
		if !ok {
			status = &SubjectLearningStatus{Subject: task.Subject}
			bySubject[task.Subject] = status
		}
		status.TaskCount++
		if task.Completed {
			status.CompletedCount++
		}
	}

	// fixed subject order so the client renders a stable list
	var out []SubjectLearningStatus
	for _, subject := range []model.Subject{model.SubjectKorean, model.SubjectEnglish, model.SubjectMath} {
		if status, ok := bySubject[subject]; ok {
			out = append(out, *status)
		}
	}

	return out, nil
}

// GetLearningStatusBySubject returns the date's tasks in the subject
// and the full history before it, incomplete tasks first within each
// group.
func (s *MyPageService) GetLearningStatusBySubject(ctx context.Context, menteeID int64, subject model.Subject, date time.Time) (*SubjectLearningDetail, error) {
	if err := validateSubject(subject); err != nil {
		return nil, err
	}

	todays, err := s.taskRepo.FindByMenteeAndDate(ctx, menteeID, date)
	if err != nil {
		return nil, err
	}
	var todayTasks []*model.Task
	for _, task := range todays {
		if task.Subject == subject {
			todayTasks = append(todayTasks, task)
		}
	}

	historyTasks, err := s.taskRepo.FindPreviousTasks(ctx, menteeID, subject, date)
	if err != nil {
		return nil, err
	}

	sortByCompletion(todayTasks)
	sortByCompletion(historyTasks)

	return &SubjectLearningDetail{
		TodayTasks:   todayTasks,
		HistoryTasks: historyTasks,
	}, nil
}

// sortByCompletion floats unfinished tasks to the top, newest rows
// first within each half.
func sortByCompletion(tasks []*model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		return tasks[i].ID > tasks[j].ID
	})
}
