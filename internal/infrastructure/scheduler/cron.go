package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/config"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

const defaultReminderSpec = "0 19 * * *"

// Scheduler runs the daily reminder sweep on a cron schedule.
type Scheduler struct {
	cron            *cron.Cron
	reminderService *usecase.ReminderService
	location        *time.Location
	logger          *zap.Logger
}

// New builds a scheduler in the configured timezone and registers the
// reminder job. Returns (nil, nil) when the reminder is disabled.
func New(cfg *config.ReminderConfig, reminderService *usecase.ReminderService, location *time.Location, logger *zap.Logger) (*Scheduler, error) {
	if !cfg.Enabled {
		logger.Info("Reminder scheduler disabled")
		return nil, nil
	}

	spec := cfg.Spec
	if spec == "" {
		spec = defaultReminderSpec
	}

	c := cron.New(cron.WithLocation(location))
	s := &Scheduler{
		cron:            c,
		reminderService: reminderService,
		location:        location,
		logger:          logger,
	}

	if _, err := c.AddFunc(spec, s.runReminders); err != nil {
		return nil, fmt.Errorf("failed to register reminder job: %w", err)
	}

	logger.Info("Reminder scheduler configured",
		zap.String("spec", spec),
		zap.String("timezone", location.String()))

	return s, nil
}

// Start begins running scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.reminderService.SendDailyReminders(ctx, time.Now().In(s.location)); err != nil {
		s.logger.Error("Daily reminder sweep failed", zap.Error(err))
	}
}
