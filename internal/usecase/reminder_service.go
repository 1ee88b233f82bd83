package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/domain/repository"
	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// ReminderService nudges mentees who still have unsubmitted homework
// for the day. One notification per mentee, carrying the remaining
// count; resource tasks never trigger reminders.
type ReminderService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// SendDailyReminders notifies every mentee with unsubmitted tasks
// scheduled for the given day. The caller decides which calendar day
// "today" is; the scheduler passes the service timezone's current
// date. Per-mentee failures are logged and skipped so one broken row
// cannot silence the rest.
func (s *ReminderService) SendDailyReminders(ctx context.Context, today time.Time) error {
	counts, err := s.taskRepo.CountUnsubmittedByMentee(ctx, today)
	if err != nil {
		return err
	}

	sent := 0
	for _, c := range counts {
		mentee, err := s.userRepo.FindByID(ctx, c.MenteeID)
		if err != nil {
			s.logger.Warn("Failed to load mentee for reminder",
				zap.Int64("mentee_id", c.MenteeID),
				zap.Error(err))
			continue
		}

		notification := model.Notification{
			Type:    model.NotificationTypeReminder,
			Title:   "오늘의 할 일 알림",
			Message: fmt.Sprintf("오늘의 할 일 %d개가 남아있어요. 지금 바로 공부를 시작해보세요!💪", c.Count),
		}
		if err := s.notifier.Notify(ctx, mentee, notification); err != nil {
			s.logger.Warn("Failed to send reminder",
				zap.Int64("mentee_id", c.MenteeID),
				zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("Daily reminders sent",
		zap.Int("mentees", sent),
		zap.Int("candidates", len(counts)))

	return nil
}
