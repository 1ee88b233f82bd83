package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/middleware/auth"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

// ResourceHandler serves shared study materials: mentors manage them,
// mentees read them.
type ResourceHandler struct {
	resourceService *usecase.ResourceService
	logger          *zap.Logger
}

func NewResourceHandler(resourceService *usecase.ResourceService, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		logger:          logger,
	}
}

type resourceRequest struct {
	Subject         string     `json:"subject" validate:"required"`
	Name            string     `json:"name" validate:"required"`
	WorksheetFileID *uuid.UUID `json:"worksheet_file_id"`
	ColumnLink      string     `json:"column_link"`
}

func (r resourceRequest) toCommand() usecase.ResourceCommand {
	return usecase.ResourceCommand{
		Subject:         model.Subject(r.Subject),
		Name:            r.Name,
		WorksheetFileID: r.WorksheetFileID,
		ColumnLink:      r.ColumnLink,
	}
}

// CreateResource handles POST /api/v1/mentor/mentees/:menteeId/resources
func (h *ResourceHandler) CreateResource(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	menteeID, err := pathID(c, "menteeId")
	if err != nil {
		return err
	}

	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject and name are required"})
	}

	resource, err := h.resourceService.CreateResource(c.Request().Context(), user.UserID, menteeID, req.toCommand())
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusCreated, newTaskResponse(resource, false))
}

// GetMenteeResources handles GET /api/v1/mentor/mentees/:menteeId/resources
func (h *ResourceHandler) GetMenteeResources(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	menteeID, err := pathID(c, "menteeId")
	if err != nil {
		return err
	}

	resources, err := h.resourceService.GetResources(c.Request().Context(), user.UserID, menteeID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"resources": newTaskResponses(resources, false)})
}

// UpdateResource handles PUT /api/v1/mentor/resources/:id
func (h *ResourceHandler) UpdateResource(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	resourceID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject and name are required"})
	}

	resource, err := h.resourceService.UpdateResource(c.Request().Context(), user.UserID, resourceID, req.toCommand())
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(resource, false))
}

// DeleteResource handles DELETE /api/v1/mentor/resources/:id
func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	user, err := auth.RequireMentor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}
	resourceID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.resourceService.DeleteResource(c.Request().Context(), user.UserID, resourceID); err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetResources handles GET /api/v1/resources for the mentee's own view.
func (h *ResourceHandler) GetResources(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	resources, err := h.resourceService.GetResources(c.Request().Context(), user.UserID, user.UserID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"resources": newTaskResponses(resources, false)})
}

// GetResource handles GET /api/v1/resources/:id
func (h *ResourceHandler) GetResource(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	resourceID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	resource, err := h.resourceService.GetResource(c.Request().Context(), user.UserID, resourceID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, newTaskResponse(resource, false))
}
