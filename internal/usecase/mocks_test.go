package usecase_test

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
)

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) CreateAll(ctx context.Context, tasks []*model.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByMenteeAndDate(ctx context.Context, menteeID int64, date time.Time) ([]*model.Task, error) {
	args := m.Called(ctx, menteeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByMenteeBetween(ctx context.Context, menteeID int64, start, end time.Time) ([]*model.Task, error) {
	args := m.Called(ctx, menteeID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByMenteeSubjectBetween(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) ([]*model.Task, error) {
	args := m.Called(ctx, menteeID, subject, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) ReplaceProofShots(ctx context.Context, taskID int64, shots []model.ProofShot) error {
	args := m.Called(ctx, taskID, shots)
	return args.Error(0)
}

func (m *MockTaskRepository) ReplaceAttachments(ctx context.Context, taskID int64, worksheets []model.Worksheet, links []model.ColumnLink) error {
	args := m.Called(ctx, taskID, worksheets, links)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteFeedbackComments(ctx context.Context, taskID int64, draftsOnly bool) error {
	args := m.Called(ctx, taskID, draftsOnly)
	return args.Error(0)
}

func (m *MockTaskRepository) CreateComments(ctx context.Context, comments []model.Comment) error {
	args := m.Called(ctx, comments)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateComment(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockTaskRepository) MarkCommentsRead(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskRepository) SaveGeneralComment(ctx context.Context, comment *model.GeneralComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteGeneralComment(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskRepository) CountUnsubmittedByMentee(ctx context.Context, date time.Time) ([]repository.MenteeTaskCount, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MenteeTaskCount), args.Error(1)
}

func (m *MockTaskRepository) CountFeedbackRequired(ctx context.Context, menteeIDs []int64, date time.Time) ([]repository.MenteeTaskCount, error) {
	args := m.Called(ctx, menteeIDs, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MenteeTaskCount), args.Error(1)
}

func (m *MockTaskRepository) FindPendingUploadMentees(ctx context.Context, menteeIDs []int64, date time.Time) ([]int64, error) {
	args := m.Called(ctx, menteeIDs, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockTaskRepository) FindResourcesByMentee(ctx context.Context, menteeID int64) ([]*model.Task, error) {
	args := m.Called(ctx, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindPreviousTasks(ctx context.Context, menteeID int64, subject model.Subject, date time.Time) ([]*model.Task, error) {
	args := m.Called(ctx, menteeID, subject, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindMostRecentByMentees(ctx context.Context, menteeIDs []int64) ([]*model.Task, error) {
	args := m.Called(ctx, menteeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindMenteesByMentor(ctx context.Context, mentorID int64) ([]*model.User, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFCMToken(ctx context.Context, userID int64, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

// MockFileRepository is a mock implementation of FileRepository
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, file *model.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.File, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.File), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id int64) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByReceiver(ctx context.Context, receiverID int64) ([]*model.Notification, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountNew(ctx context.Context, receiverID int64) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllChecked(ctx context.Context, receiverID int64) error {
	args := m.Called(ctx, receiverID)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockLearningReportRepository is a mock implementation of LearningReportRepository
type MockLearningReportRepository struct {
	mock.Mock
}

func (m *MockLearningReportRepository) Create(ctx context.Context, report *model.LearningReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockLearningReportRepository) FindByID(ctx context.Context, id int64) (*model.LearningReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LearningReport), args.Error(1)
}

func (m *MockLearningReportRepository) FindByMentee(ctx context.Context, menteeID int64) ([]*model.LearningReport, error) {
	args := m.Called(ctx, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LearningReport), args.Error(1)
}

func (m *MockLearningReportRepository) FindByPeriod(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) (*model.LearningReport, error) {
	args := m.Called(ctx, menteeID, subject, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LearningReport), args.Error(1)
}

func (m *MockLearningReportRepository) FindBySubjectContainingDate(ctx context.Context, menteeID int64, subject model.Subject, date time.Time) (*model.LearningReport, error) {
	args := m.Called(ctx, menteeID, subject, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LearningReport), args.Error(1)
}

func (m *MockLearningReportRepository) CountByMentee(ctx context.Context, menteeID int64) (int64, error) {
	args := m.Called(ctx, menteeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLearningReportRepository) ExistsForPeriod(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) (bool, error) {
	args := m.Called(ctx, menteeID, subject, start, end)
	return args.Bool(0), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, receiver *model.User, notification model.Notification) error {
	args := m.Called(ctx, receiver, notification)
	return args.Error(0)
}

// MockPushSender is a mock implementation of PushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)
	return args.Error(0)
}

// MockFileStorage is a mock implementation of FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, body, size)
	return args.Error(0)
}

func (m *MockFileStorage) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFileStorage) Bucket() string {
	args := m.Called()
	return args.String(0)
}
