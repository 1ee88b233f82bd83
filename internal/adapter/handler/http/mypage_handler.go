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

// MyPageHandler serves the mentee's own learning overview.
type MyPageHandler struct {
	myPageService *usecase.MyPageService
	logger        *zap.Logger
}

func NewMyPageHandler(myPageService *usecase.MyPageService, logger *zap.Logger) *MyPageHandler {
	return &MyPageHandler{
		myPageService: myPageService,
		logger:        logger,
	}
}

type subjectStatusResponse struct {
	Subject        string `json:"subject"`
	TaskCount      int    `json:"task_count"`
	CompletedCount int    `json:"completed_count"`
}

// GetLearningStatus handles GET /api/v1/mypage/learning-status?date=
func (h *MyPageHandler) GetLearningStatus(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected yyyy-mm-dd"})
	}

	statuses, err := h.myPageService.GetTotalLearningStatus(c.Request().Context(), user.UserID, date)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	out := make([]subjectStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, subjectStatusResponse{
			Subject:        string(s.Subject),
			TaskCount:      s.TaskCount,
			CompletedCount: s.CompletedCount,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"subjects": out})
}

// GetLearningStatusBySubject handles
// GET /api/v1/mypage/learning-status/:subject?date=
func (h *MyPageHandler) GetLearningStatusBySubject(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected yyyy-mm-dd"})
	}
	subject := model.Subject(c.Param("subject"))

	detail, err := h.myPageService.GetLearningStatusBySubject(c.Request().Context(), user.UserID, subject, date)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"today_tasks":   newTaskResponses(detail.TodayTasks, false),
		"history_tasks": newTaskResponses(detail.HistoryTasks, false),
	})
}
