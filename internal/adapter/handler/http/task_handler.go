package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/middleware/auth"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

// TaskHandler serves the mentee side of the task lifecycle.
type TaskHandler struct {
	taskService *usecase.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(taskService *usecase.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

type menteeTaskRequest struct {
	Subject     string `json:"subject" validate:"required"`
	Name        string `json:"name" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	GoalMinutes int    `json:"goal_minutes" validate:"required,gt=0"`
}

type questionRequest struct {
	Content  string  `json:"content" validate:"required"`
	PercentX float64 `json:"percent_x" validate:"gte=0,lte=100"`
	PercentY float64 `json:"percent_y" validate:"gte=0,lte=100"`
}

type proofShotRequest struct {
	FileID    uuid.UUID         `json:"file_id" validate:"required"`
	Questions []questionRequest `json:"questions" validate:"dive"`
}

// An empty proof_shots list is a valid submission: it wipes whatever
// was submitted before.
type submitTaskRequest struct {
	ProofShots []proofShotRequest `json:"proof_shots" validate:"dive"`
}

type menteeTaskUpdateRequest struct {
	Name        string `json:"name" validate:"required"`
	GoalMinutes int    `json:"goal_minutes" validate:"gte=0"`
}

type completeTaskRequest struct {
	ActualMinutes int    `json:"actual_minutes" validate:"gte=0"`
	CurrentDate   string `json:"current_date" validate:"required"`
}

// GetTasks handles GET /api/v1/tasks?date= or ?start_date=&end_date=
func (h *TaskHandler) GetTasks(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var tasks []*model.Task
	if dateStr := c.QueryParam("date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected yyyy-mm-dd"})
		}
		tasks, err = h.taskService.GetTasksByDate(c.Request().Context(), user.UserID, date)
		if err != nil {
			return apperrors.ToHTTPError(err)
		}
	} else {
		start, err := time.Parse(dateLayout, c.QueryParam("start_date"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, expected yyyy-mm-dd"})
		}
		end, err := time.Parse(dateLayout, c.QueryParam("end_date"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date, expected yyyy-mm-dd"})
		}
		tasks, err = h.taskService.GetTasksBetween(c.Request().Context(), user.UserID, start, end)
		if err != nil {
			return apperrors.ToHTTPError(err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"tasks": newTaskResponses(tasks, false)})
}

// CreateTask handles POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req menteeTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject, name, start_date and goal_minutes are required"})
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, expected yyyy-mm-dd"})
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), user.UserID, usecase.MenteeTaskCreateCommand{
		Subject:     model.Subject(req.Subject),
		Name:        req.Name,
		StartDate:   startDate,
		GoalMinutes: req.GoalMinutes,
	})
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusCreated, newTaskResponse(task, false))
}

// UpdateTask handles PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req menteeTaskUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required and goal_minutes must not be negative"})
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), user.UserID, taskID, usecase.MenteeTaskUpdateCommand{
		Name:        req.Name,
		GoalMinutes: req.GoalMinutes,
	})
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(task, false))
}

// DeleteTask handles DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), user.UserID, taskID); err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetTask handles GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), user.UserID, taskID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(task, false))
}

// GetTaskForSubmit handles GET /api/v1/tasks/:id/submission
func (h *TaskHandler) GetTaskForSubmit(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTaskForSubmit(c.Request().Context(), user.UserID, taskID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(task, false))
}

// SubmitTask handles POST /api/v1/tasks/:id/submission
func (h *TaskHandler) SubmitTask(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req submitTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "each proof shot needs a file_id"})
	}

	shots := make([]usecase.ProofShotSubmission, 0, len(req.ProofShots))
	for _, p := range req.ProofShots {
		questions := make([]usecase.QuestionInput, 0, len(p.Questions))
		for _, q := range p.Questions {
			questions = append(questions, usecase.QuestionInput{
				Content:  q.Content,
				PercentX: q.PercentX,
				PercentY: q.PercentY,
			})
		}
		shots = append(shots, usecase.ProofShotSubmission{FileID: p.FileID, Questions: questions})
	}

	task, err := h.taskService.SubmitTask(c.Request().Context(), user.UserID, taskID, shots)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(task, false))
}

// UpdateCompleted handles PATCH /api/v1/tasks/:id/completion
func (h *TaskHandler) UpdateCompleted(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req completeTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current_date is required and actual_minutes must not be negative"})
	}
	currentDate, err := time.Parse(dateLayout, req.CurrentDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid current_date, expected yyyy-mm-dd"})
	}

	task, err := h.taskService.UpdateCompleted(c.Request().Context(), user.UserID, taskID, req.ActualMinutes, currentDate)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(task, false))
}

// GetTaskFeedback handles GET /api/v1/tasks/:id/feedback
//
// Opening this view marks the feedback read, so it goes through the
// task service rather than a plain fetch.
func (h *TaskHandler) GetTaskFeedback(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTaskFeedback(c.Request().Context(), user.UserID, taskID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(task, false))
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
