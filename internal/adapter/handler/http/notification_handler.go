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

// NotificationHandler serves the notification inbox.
type NotificationHandler struct {
	notificationService *usecase.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *usecase.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

type notificationResponse struct {
	ID               int64  `json:"id"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	Status           string `json:"status"`
	TaskID           *int64 `json:"task_id,omitempty"`
	LearningReportID *int64 `json:"learning_report_id,omitempty"`
	CreatedAt        string `json:"created_at"`
}

func newNotificationResponse(n *model.Notification) notificationResponse {
	return notificationResponse{
		ID:               n.ID,
		Type:             string(n.Type),
		Title:            n.Title,
		Message:          n.Message,
		Status:           string(n.Status),
		TaskID:           n.TaskID,
		LearningReportID: n.LearningReportID,
		CreatedAt:        n.CreatedAt.Format(time.RFC3339),
	}
}

// GetNotifications handles GET /api/v1/notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	notifications, err := h.notificationService.GetNotifications(c.Request().Context(), user.UserID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, newNotificationResponse(n))
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": out})
}

// GetNewCount handles GET /api/v1/notifications/count
func (h *NotificationHandler) GetNewCount(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	count, err := h.notificationService.GetNewCount(c.Request().Context(), user.UserID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead handles PATCH /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	notificationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationService.MarkAsRead(c.Request().Context(), user.UserID, notificationID); err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

type fcmTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// RegisterFCMToken handles POST /api/v1/notifications/fcm-token
func (h *NotificationHandler) RegisterFCMToken(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req fcmTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token is required"})
	}

	if err := h.notificationService.RegisterFCMToken(c.Request().Context(), user.UserID, req.Token); err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
