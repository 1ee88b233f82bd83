package errors

import (
	"go.uber.org/zap"
)

// LogError records err as a structured log entry, including the error code
// when err is an AppError.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	allFields := make([]zap.Field, 0, len(fields)+2)
	allFields = append(allFields, zap.Error(err))

	var appErr *AppError
	if As(err, &appErr) {
		allFields = append(allFields, zap.String("error_code", appErr.Code()))
	}

	allFields = append(allFields, fields...)

	logger.Error(msg, allFields...)
}
