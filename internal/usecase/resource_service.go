package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
)

// ResourceCommand carries the fields of a study material. At most one
// worksheet file and one column link are attached.
type ResourceCommand struct {
	Subject         model.Subject
	Name            string
	WorksheetFileID *uuid.UUID
	ColumnLink      string
}

// ResourceService manages shared study materials. A material is stored
// as a task row flagged IsResource: it keeps its subject and
// attachments but never enters the homework lifecycle.
type ResourceService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	fileRepo repository.FileRepository
	logger   *zap.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	fileRepo repository.FileRepository,
	logger *zap.Logger,
) *ResourceService {
	return &ResourceService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		fileRepo: fileRepo,
		logger:   logger,
	}
}

// GetResources lists the mentee's materials, newest first. Both sides
// of the pair may read them.
func (s *ResourceService) GetResources(ctx context.Context, viewerID, menteeID int64) ([]*model.Task, error) {
	if err := s.authorizeViewer(ctx, viewerID, menteeID); err != nil {
		return nil, err
	}
	return s.taskRepo.FindResourcesByMentee(ctx, menteeID)
}

// GetResource returns one material with its attachments.
func (s *ResourceService) GetResource(ctx context.Context, viewerID, resourceID int64) (*model.Task, error) {
	resource, err := s.taskRepo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if !resource.IsResource {
		return nil, apperrors.NewNotFound("resource not found")
	}
	if err := s.authorizeViewer(ctx, viewerID, resource.MenteeID); err != nil {
		return nil, err
	}
	return resource, nil
}

// CreateResource registers a new material for the mentee, dated today.
func (s *ResourceService) CreateResource(ctx context.Context, mentorID, menteeID int64, cmd ResourceCommand) (*model.Task, error) {
	if err := s.authorizeMentor(ctx, mentorID, menteeID); err != nil {
		return nil, err
	}
	name, err := s.validateResource(cmd)
	if err != nil {
		return nil, err
	}

	worksheets, links, err := s.resourceAttachments(ctx, cmd)
	if err != nil {
		return nil, err
	}

	start := datatypes.Date(time.Now())
	resource := &model.Task{
		MenteeID:    menteeID,
		Subject:     cmd.Subject,
		Name:        name,
		StartDate:   &start,
		GoalMinutes: 0,
		CreatedBy:   model.RoleMentor,
		IsResource:  true,
		Worksheets:  worksheets,
		ColumnLinks: links,
	}

	if err := s.taskRepo.Create(ctx, resource); err != nil {
		return nil, err
	}

	s.logger.Info("Resource created",
		zap.Int64("mentor_id", mentorID),
		zap.Int64("mentee_id", menteeID),
		zap.Int64("resource_id", resource.ID))

	return resource, nil
}

// UpdateResource replaces the material's subject, name and attachments.
func (s *ResourceService) UpdateResource(ctx context.Context, mentorID, resourceID int64, cmd ResourceCommand) (*model.Task, error) {
	resource, err := s.ownedResource(ctx, mentorID, resourceID)
	if err != nil {
		return nil, err
	}
	name, err := s.validateResource(cmd)
	if err != nil {
		return nil, err
	}

	resource.Subject = cmd.Subject
	resource.Name = name
	if err := s.taskRepo.Update(ctx, resource); err != nil {
		return nil, err
	}

	worksheets, links, err := s.resourceAttachments(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.ReplaceAttachments(ctx, resource.ID, worksheets, links); err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(ctx, resource.ID)
}

// DeleteResource removes a material.
func (s *ResourceService) DeleteResource(ctx context.Context, mentorID, resourceID int64) error {
	resource, err := s.ownedResource(ctx, mentorID, resourceID)
	if err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, resource.ID)
}

func (s *ResourceService) validateResource(cmd ResourceCommand) (string, error) {
	if err := validateSubject(cmd.Subject); err != nil {
		return "", err
	}
	return validateTaskName(cmd.Name)
}

func (s *ResourceService) resourceAttachments(ctx context.Context, cmd ResourceCommand) ([]model.Worksheet, []model.ColumnLink, error) {
	var worksheets []model.Worksheet
	if cmd.WorksheetFileID != nil {
		file, err := s.fileRepo.FindByID(ctx, *cmd.WorksheetFileID)
		if err != nil {
			return nil, nil, err
		}
		worksheets = append(worksheets, model.Worksheet{FileID: file.ID})
	}

	var links []model.ColumnLink
	if link := strings.TrimSpace(cmd.ColumnLink); link != "" {
		links = append(links, model.ColumnLink{Link: link})
	}

	return worksheets, links, nil
}

func (s *ResourceService) ownedResource(ctx context.Context, mentorID, resourceID int64) (*model.Task, error) {
	resource, err := s.taskRepo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if !resource.IsResource {
		return nil, apperrors.NewNotFound("resource not found")
	}
	if err := s.authorizeMentor(ctx, mentorID, resource.MenteeID); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) authorizeMentor(ctx context.Context, mentorID, menteeID int64) error {
	mentee, err := s.userRepo.FindByID(ctx, menteeID)
	if err != nil {
		return err
	}
	if mentee.MentorID == nil || *mentee.MentorID != mentorID {
		return apperrors.NewAccessDenied("mentee is not assigned to this mentor")
	}
	return nil
}

// authorizeViewer admits the mentee themselves or their mentor.
func (s *ResourceService) authorizeViewer(ctx context.Context, viewerID, menteeID int64) error {
	if viewerID == menteeID {
		return nil
	}
	return s.authorizeMentor(ctx, viewerID, menteeID)
}
