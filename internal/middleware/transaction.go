package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/goodspace/oneshot-server/internal/infrastructure/database/dbtx"
	apperrors "github.com/goodspace/oneshot-server/pkg/errors"
)

// Transaction wraps every mutating request in one database transaction.
// The transaction rides the request context, so repositories pick it up
// without being passed anything; it commits when the handler succeeds
// and rolls back on error or panic. Reads run outside a transaction.
func Transaction(db *gorm.DB, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			tx := db.Begin()
			if tx.Error != nil {
				logger.Error("Failed to begin transaction", zap.Error(tx.Error))
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to begin transaction")
			}

			ctx := dbtx.WithTx(c.Request().Context(), tx)
			c.SetRequest(c.Request().WithContext(ctx))

			defer func() {
				if r := recover(); r != nil {
					tx.Rollback()
					panic(r) // re-throw panic after rollback
				}
			}()

			if err := next(c); err != nil {
				tx.Rollback()
				apperrors.LogError(logger, err, "Request rolled back",
					zap.String("method", c.Request().Method),
					zap.String("path", c.Request().URL.Path))
				return err
			}

			if err := tx.Commit().Error; err != nil {
				logger.Error("Failed to commit transaction", zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to commit transaction")
			}

			return nil
		}
	}
}
