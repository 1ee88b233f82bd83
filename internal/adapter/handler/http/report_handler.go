package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/middleware/auth"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

// ReportHandler serves learning reports for both roles: mentors write
// them, mentees read them.
type ReportHandler struct {
	reportService *usecase.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *usecase.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

type reportCreateRequest struct {
	Subject        string   `json:"subject" validate:"required"`
	StartDate      string   `json:"start_date" validate:"required"`
	EndDate        string   `json:"end_date" validate:"required"`
	GeneralComment string   `json:"general_comment" validate:"required"`
	GoodPoints     []string `json:"good_points" validate:"required,min=1"`
	BadPoints      []string `json:"bad_points" validate:"required,min=1"`
}

type reportResponse struct {
	ID             int64          `json:"id"`
	MenteeID       int64          `json:"mentee_id"`
	MentorID       int64          `json:"mentor_id"`
	Subject        string         `json:"subject"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	GeneralComment string         `json:"general_comment"`
	GoodPoints     []string       `json:"good_points"`
	BadPoints      []string       `json:"bad_points"`
	Tasks          []taskResponse `json:"tasks,omitempty"`
	CreatedAt      string         `json:"created_at"`
}

func newReportResponse(report *model.LearningReport, tasks []*model.Task) reportResponse {
	resp := reportResponse{
		ID:             report.ID,
		MenteeID:       report.MenteeID,
		MentorID:       report.MentorID,
		Subject:        string(report.Subject),
		StartDate:      time.Time(report.StartDate).Format(dateLayout),
		EndDate:        time.Time(report.EndDate).Format(dateLayout),
		GeneralComment: report.GeneralComment,
		GoodPoints:     []string{},
		BadPoints:      []string{},
		CreatedAt:      report.CreatedAt.Format(time.RFC3339),
	}
	for _, c := range report.GoodPoints() {
		resp.GoodPoints = append(resp.GoodPoints, c.Content)
	}
	for _, c := range report.BadPoints() {
		resp.BadPoints = append(resp.BadPoints, c.Content)
	}
	if len(tasks) > 0 {
		resp.Tasks = newTaskResponses(tasks, false)
	}
	return resp
}

// CreateReport handles POST /api/v1/mentor/mentees/:menteeId/reports
func (h *ReportHandler) CreateReport(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	menteeID, err := pathID(c, "menteeId")
	if err != nil {
		return err
	}

	var req reportCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject, period, general_comment, good_points and bad_points are required"})
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start date, expected yyyy-mm-dd"})
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end date, expected yyyy-mm-dd"})
	}

	report, err := h.reportService.CreateReport(c.Request().Context(), user.UserID, menteeID, usecase.ReportCreateCommand{
		Subject:        model.Subject(req.Subject),
		StartDate:      start,
		EndDate:        end,
		GeneralComment: req.GeneralComment,
		GoodPoints:     req.GoodPoints,
		BadPoints:      req.BadPoints,
	})
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusCreated, newReportResponse(report, nil))
}

// GetReport handles GET /api/v1/mentor/mentees/:menteeId/reports
// with ?subject=&start_date=&end_date=
func (h *ReportHandler) GetReport(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	menteeID, err := pathID(c, "menteeId")
	if err != nil {
		return err
	}
	subject, start, end, err := reportPeriodParams(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.GetReport(c.Request().Context(), user.UserID, menteeID, subject, start, end)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newReportResponse(report, nil))
}

// ReportExists handles GET /api/v1/mentor/mentees/:menteeId/reports/exists
func (h *ReportHandler) ReportExists(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	menteeID, err := pathID(c, "menteeId")
	if err != nil {
		return err
	}
	subject, start, end, err := reportPeriodParams(c)
	if err != nil {
		return err
	}

	exists, err := h.reportService.ReportExists(c.Request().Context(), user.UserID, menteeID, subject, start, end)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"exists": exists})
}

// GetReceivedReport handles GET /api/v1/reports?subject=&date=.
// Without query parameters it lists every report written for the
// mentee, newest period first.
func (h *ReportHandler) GetReceivedReport(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	if c.QueryParam("subject") == "" && c.QueryParam("date") == "" {
		list, err := h.reportService.GetReceivedReports(c.Request().Context(), user.UserID)
		if err != nil {
			return apperrors.ToHTTPError(err)
		}
		out := make([]reportResponse, 0, len(list))
		for _, r := range list {
			out = append(out, newReportResponse(r, nil))
		}
		return c.JSON(http.StatusOK, echo.Map{"reports": out})
	}

	subject := model.Subject(c.QueryParam("subject"))
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected yyyy-mm-dd"})
	}

	report, tasks, err := h.reportService.GetReceivedReport(c.Request().Context(), user.UserID, subject, date)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newReportResponse(report, tasks))
}

// GetReceivedReportByID handles GET /api/v1/reports/:id
func (h *ReportHandler) GetReceivedReportByID(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	reportID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	report, tasks, err := h.reportService.GetReceivedReportByID(c.Request().Context(), user.UserID, reportID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newReportResponse(report, tasks))
}

// CountReceivedReports handles GET /api/v1/reports/count
func (h *ReportHandler) CountReceivedReports(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	count, err := h.reportService.CountReceivedReports(c.Request().Context(), user.UserID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

func reportPeriodParams(c echo.Context) (model.Subject, time.Time, time.Time, error) {
	subject := model.Subject(c.QueryParam("subject"))
	start, err := time.Parse(dateLayout, c.QueryParam("start_date"))
	if err != nil {
		return "", time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid start date, expected yyyy-mm-dd")
	}
	end, err := time.Parse(dateLayout, c.QueryParam("end_date"))
	if err != nil {
		return "", time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid end date, expected yyyy-mm-dd")
	}
	return subject, start, end, nil
}
