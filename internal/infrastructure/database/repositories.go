package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/goodspace/oneshot-server/internal/adapter/repository"
	domainRepo "github.com/goodspace/oneshot-server/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Task           domainRepo.TaskRepository
	User           domainRepo.UserRepository
	File           domainRepo.FileRepository
	Notification   domainRepo.NotificationRepository
	LearningReport domainRepo.LearningReportRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Task:           repository.NewTaskRepository(db, logger),
		User:           repository.NewUserRepository(db),
		File:           repository.NewFileRepository(db, logger),
		Notification:   repository.NewNotificationRepository(db, logger),
		LearningReport: repository.NewLearningReportRepository(db, logger),
	}
}
