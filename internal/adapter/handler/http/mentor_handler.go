package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/middleware/auth"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

// MentorHandler serves the mentor side: assigning tasks, the feedback
// workflow and the dashboard.
type MentorHandler struct {
	mentorService    *usecase.MentorTaskService
	dashboardService *usecase.DashboardService
	logger           *zap.Logger
}

func NewMentorHandler(
	mentorService *usecase.MentorTaskService,
	dashboardService *usecase.DashboardService,
	logger *zap.Logger,
) *MentorHandler {
	return &MentorHandler{
		mentorService:    mentorService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

type mentorTaskCreateRequest struct {
	Subject          string      `json:"subject" validate:"required"`
	Names            []string    `json:"names" validate:"required,min=1"`
	DueDates         []string    `json:"due_dates" validate:"required,min=1"`
	GoalMinutes      int         `json:"goal_minutes" validate:"required,gt=0"`
	WorksheetFileIDs []uuid.UUID `json:"worksheet_file_ids"`
	ColumnLinks      []string    `json:"column_links"`
}

type mentorTaskUpdateRequest struct {
	Subject          string      `json:"subject" validate:"required"`
	Name             string      `json:"name" validate:"required"`
	GoalMinutes      int         `json:"goal_minutes" validate:"required,gt=0"`
	WorksheetFileIDs []uuid.UUID `json:"worksheet_file_ids"`
	ColumnLinks      []string    `json:"column_links"`
}

type feedbackCommentRequest struct {
	Content  string  `json:"content"`
	Starred  bool    `json:"starred"`
	PercentX float64 `json:"percent_x" validate:"gte=0,lte=100"`
	PercentY float64 `json:"percent_y" validate:"gte=0,lte=100"`
}

type proofShotFeedbackRequest struct {
	ProofShotID int64                    `json:"proof_shot_id" validate:"required"`
	Comments    []feedbackCommentRequest `json:"comments" validate:"dive"`
}

type answerRequest struct {
	CommentID int64  `json:"comment_id" validate:"required"`
	Content   string `json:"content"`
}

type feedbackRequest struct {
	GeneralComment string                     `json:"general_comment"`
	ProofShots     []proofShotFeedbackRequest `json:"proof_shots" validate:"dive"`
	Answers        []answerRequest            `json:"answers" validate:"dive"`
}

func (r feedbackRequest) toCommand() usecase.FeedbackCommand {
	cmd := usecase.FeedbackCommand{GeneralComment: r.GeneralComment}
	for _, shot := range r.ProofShots {
		feedback := usecase.ProofShotFeedback{ProofShotID: shot.ProofShotID}
		for _, c := range shot.Comments {
			feedback.Comments = append(feedback.Comments, usecase.FeedbackCommentInput{
				Content:  c.Content,
				Starred:  c.Starred,
				PercentX: c.PercentX,
				PercentY: c.PercentY,
			})
		}
		cmd.ProofShots = append(cmd.ProofShots, feedback)
	}
	for _, a := range r.Answers {
		cmd.Answers = append(cmd.Answers, usecase.AnswerInput{CommentID: a.CommentID, Content: a.Content})
	}
	return cmd
}

// CreateTasks handles POST /api/v1/mentor/mentees/:menteeId/tasks
func (h *MentorHandler) CreateTasks(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	menteeID, err := pathID(c, "menteeId")
	if err != nil {
		return err
	}

	var req mentorTaskCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject, names, due_dates and goal_minutes are required"})
	}

	dueDates := make([]time.Time, 0, len(req.DueDates))
	for _, s := range req.DueDates {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid due date, expected yyyy-mm-dd"})
		}
		dueDates = append(dueDates, d)
	}

	tasks, err := h.mentorService.CreateTasks(c.Request().Context(), user.UserID, menteeID, usecase.MentorTaskCreateCommand{
		Subject:          model.Subject(req.Subject),
		Names:            req.Names,
		DueDates:         dueDates,
		GoalMinutes:      req.GoalMinutes,
		WorksheetFileIDs: req.WorksheetFileIDs,
		ColumnLinks:      req.ColumnLinks,
	})
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"tasks": newTaskResponses(tasks, true)})
}

// GetMenteeTasks handles GET /api/v1/mentor/mentees/:menteeId/tasks
// with either ?date= for one day or ?start_date=&end_date= for a period.
func (h *MentorHandler) GetMenteeTasks(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	menteeID, err := pathID(c, "menteeId")
	if err != nil {
		return err
	}

	var start, end time.Time
	if dateStr := c.QueryParam("date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected yyyy-mm-dd"})
		}
		start, end = date, date
	} else {
		start, err = time.Parse(dateLayout, c.QueryParam("start_date"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, expected yyyy-mm-dd"})
		}
		end, err = time.Parse(dateLayout, c.QueryParam("end_date"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date, expected yyyy-mm-dd"})
		}
	}

	tasks, err := h.mentorService.GetMenteeTasks(c.Request().Context(), user.UserID, menteeID, start, end)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tasks": newTaskResponses(tasks, true)})
}

// GetTask handles GET /api/v1/mentor/tasks/:id
func (h *MentorHandler) GetTask(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.mentorService.GetTask(c.Request().Context(), user.UserID, taskID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(task, true))
}

// UpdateTask handles PUT /api/v1/mentor/tasks/:id
func (h *MentorHandler) UpdateTask(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req mentorTaskUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject, name and goal_minutes are required"})
	}

	task, err := h.mentorService.UpdateTask(c.Request().Context(), user.UserID, taskID, usecase.MentorTaskUpdateCommand{
		Subject:          model.Subject(req.Subject),
		Name:             req.Name,
		GoalMinutes:      req.GoalMinutes,
		WorksheetFileIDs: req.WorksheetFileIDs,
		ColumnLinks:      req.ColumnLinks,
	})
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(task, true))
}

// DeleteTask handles DELETE /api/v1/mentor/tasks/:id
func (h *MentorHandler) DeleteTask(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.mentorService.DeleteTask(c.Request().Context(), user.UserID, taskID); err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SaveDraftFeedback handles PUT /api/v1/mentor/tasks/:id/feedback/draft
func (h *MentorHandler) SaveDraftFeedback(c echo.Context) error {
	return h.saveFeedback(c, false)
}

// SaveFeedback handles PUT /api/v1/mentor/tasks/:id/feedback
func (h *MentorHandler) SaveFeedback(c echo.Context) error {
	return h.saveFeedback(c, true)
}

func (h *MentorHandler) saveFeedback(c echo.Context, register bool) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid feedback payload"})
	}

	if register {
		err = h.mentorService.SaveFeedback(c.Request().Context(), user.UserID, taskID, req.toCommand())
	} else {
		err = h.mentorService.SaveDraftFeedback(c.Request().Context(), user.UserID, taskID, req.toCommand())
	}
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteFeedback handles DELETE /api/v1/mentor/tasks/:id/feedback
func (h *MentorHandler) DeleteFeedback(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.mentorService.DeleteFeedback(c.Request().Context(), user.UserID, taskID); err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

type menteeSummaryResponse struct {
	MenteeID int64   `json:"mentee_id"`
	Name     string  `json:"name"`
	Grade    *string `json:"grade,omitempty"`
	Count    int64   `json:"count"`
}

// GetFeedbackRequired handles GET /api/v1/mentor/dashboard/feedback-required?date=
func (h *MentorHandler) GetFeedbackRequired(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected yyyy-mm-dd"})
	}

	summaries, err := h.dashboardService.GetFeedbackRequired(c.Request().Context(), user.UserID, date)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	out := make([]menteeSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, menteeSummaryResponse{
			MenteeID: s.Mentee.ID,
			Name:     s.Mentee.Name,
			Grade:    s.Mentee.Grade,
			Count:    s.Count,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"mentees": out})
}

// GetPendingUploads handles GET /api/v1/mentor/dashboard/pending-uploads?date=
func (h *MentorHandler) GetPendingUploads(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected yyyy-mm-dd"})
	}

	mentees, err := h.dashboardService.GetPendingUploads(c.Request().Context(), user.UserID, date)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	out := make([]menteeSummaryResponse, 0, len(mentees))
	for _, m := range mentees {
		out = append(out, menteeSummaryResponse{MenteeID: m.ID, Name: m.Name, Grade: m.Grade})
	}

	return c.JSON(http.StatusOK, echo.Map{"mentees": out})
}

type menteeManagementEntryResponse struct {
	MenteeID       int64   `json:"mentee_id"`
	Name           string  `json:"name"`
	Grade          *string `json:"grade,omitempty"`
	RecentTaskName *string `json:"recent_task_name,omitempty"`
	RecentTaskDate *string `json:"recent_task_date,omitempty"`
	Submitted      bool    `json:"submitted"`
}

// GetMenteeManagement handles GET /api/v1/mentor/dashboard/mentees?date=
func (h *MentorHandler) GetMenteeManagement(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected yyyy-mm-dd"})
	}

	list, err := h.dashboardService.GetMenteeManagement(c.Request().Context(), user.UserID, date)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	entries := make([]menteeManagementEntryResponse, 0, len(list.Entries))
	for _, e := range list.Entries {
		entry := menteeManagementEntryResponse{
			MenteeID:  e.Mentee.ID,
			Name:      e.Mentee.Name,
			Grade:     e.Mentee.Grade,
			Submitted: e.Submitted,
		}
		if e.RecentTask != nil {
			entry.RecentTaskName = &e.RecentTask.Name
			entry.RecentTaskDate = formatDate(e.RecentTask.ScheduledDate())
		}
		entries = append(entries, entry)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":     list.Total,
		"submitted": list.Submitted,
		"mentees":   entries,
	})
}
