package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
)

// MenteeTaskSummary pairs a mentee with a count of tasks needing
// attention.
type MenteeTaskSummary struct {
	Mentee *model.User
	Count  int64
}

// MenteeManagementEntry is one row of the mentor's mentee list: the
// mentee, their latest scheduled task and whether today's homework is
// submitted.
type MenteeManagementEntry struct {
	Mentee     *model.User
	RecentTask *model.Task
	Submitted  bool
}

// MenteeManagement is the mentor's management view over all assigned
// mentees.
type MenteeManagement struct {
	Total     int
	Submitted int
	Entries   []MenteeManagementEntry
}

// DashboardService answers the mentor's overview questions: who needs
// feedback, who has not uploaded today.
type DashboardService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetFeedbackRequired returns, per assigned mentee, how many tasks
// scheduled for the date were submitted but still lack registered
// feedback. Mentees with nothing pending are omitted.
func (s *DashboardService) GetFeedbackRequired(ctx context.Context, mentorID int64, date time.Time) ([]MenteeTaskSummary, error) {
	mentees, err := s.userRepo.FindMenteesByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if len(mentees) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(mentees))
	byID := make(map[int64]*model.User, len(mentees))
	for i, m := range mentees {
		ids[i] = m.ID
		byID[m.ID] = m
	}

	counts, err := s.taskRepo.CountFeedbackRequired(ctx, ids, date)
	if err != nil {
		return nil, err
	}

	summaries := make([]MenteeTaskSummary, 0, len(counts))
	for _, c := range counts {
		mentee, ok := byID[c.MenteeID]
		if !ok {
			continue
		}
		summaries = append(summaries, MenteeTaskSummary{Mentee: mentee, Count: c.Count})
	}

	return summaries, nil
}

// GetPendingUploads returns the assigned mentees who have a task
// scheduled for the date but have not submitted a proof shot yet.
func (s *DashboardService) GetPendingUploads(ctx context.Context, mentorID int64, date time.Time) ([]*model.User, error) {
	mentees, err := s.userRepo.FindMenteesByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if len(mentees) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(mentees))
	for i, m := range mentees {
		ids[i] = m.ID
	}

	pendingIDs, err := s.taskRepo.FindPendingUploadMentees(ctx, ids, date)
	if err != nil {
		return nil, err
	}

	pending := make(map[int64]bool, len(pendingIDs))
	for _, id := range pendingIDs {
		pending[id] = true
	}

	var out []*model.User
	for _, m := range mentees {
		if pending[m.ID] {
			out = append(out, m)
		}
	}

	return out, nil
}

// GetMenteeManagement builds the management list for the date: every
// assigned mentee with their latest task and a submitted flag. A mentee
// with nothing scheduled for the date counts as submitted.
func (s *DashboardService) GetMenteeManagement(ctx context.Context, mentorID int64, date time.Time) (*MenteeManagement, error) {
	mentees, err := s.userRepo.FindMenteesByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if len(mentees) == 0 {
		return &MenteeManagement{}, nil
	}

	ids := make([]int64, len(mentees))
	for i, m := range mentees {
		ids[i] = m.ID
	}

	pendingIDs, err := s.taskRepo.FindPendingUploadMentees(ctx, ids, date)
	if err != nil {
		return nil, err
	}
	pending := make(map[int64]bool, len(pendingIDs))
	for _, id := range pendingIDs {
		pending[id] = true
	}

	recent, err := s.taskRepo.FindMostRecentByMentees(ctx, ids)
	if err != nil {
		return nil, err
	}
	recentByMentee := make(map[int64]*model.Task, len(recent))
	for _, task := range recent {
		recentByMentee[task.MenteeID] = task
	}

	out := &MenteeManagement{Total: len(mentees)}
	for _, m := range mentees {
		submitted := !pending[m.ID]
		if submitted {
			out.Submitted++
		}
		out.Entries = append(out.Entries, MenteeManagementEntry{
			Mentee:     m,
			RecentTask: recentByMentee[m.ID],
			Submitted:  submitted,
		})
	}

	return out, nil
}
