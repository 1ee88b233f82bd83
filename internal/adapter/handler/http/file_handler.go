package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/middleware/auth"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

// FileHandler serves file uploads and presigned downloads.
type FileHandler struct {
	fileService *usecase.FileService
	logger      *zap.Logger
}

func NewFileHandler(fileService *usecase.FileService, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// Upload handles POST /api/v1/files with a multipart "file" part.
func (h *FileHandler) Upload(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart file field is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read uploaded file")
	}
	defer src.Close()

	file, err := h.fileService.Upload(
		c.Request().Context(),
		user.UserID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusCreated, newFileResponse(file))
}

// GetDownloadURL handles GET /api/v1/files/:id/url
func (h *FileHandler) GetDownloadURL(c echo.Context) error {
	if _, err := auth.GetUserFromContext(c); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid file id"})
	}

	url, err := h.fileService.GetDownloadURL(c.Request().Context(), fileID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

// Delete handles DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid file id"})
	}

	if err := h.fileService.Delete(c.Request().Context(), user.UserID, fileID); err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
