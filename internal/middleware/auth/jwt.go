package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// AuthUser represents an authenticated user from JWT
type AuthUser struct {
	UserID int64          `json:"user_id"`
	Role   model.UserRole `json:"role"`
}

func (u *AuthUser) IsMentor() bool {
	return u.Role == model.RoleMentor
}

// contextKey is used for storing user in context
type contextKey string

const (
	userContextKey contextKey = "authenticated_user"
)

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

// JWTMiddleware creates a middleware that validates access tokens. The
// subject claim carries the numeric user id, the role claim the user's
// side of the mentoring pair.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authorization header required",
					"code":  "MISSING_AUTH_HEADER",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid authorization header format. Expected: Bearer <token>",
					"code":  "INVALID_AUTH_FORMAT",
				})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})
			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid or expired token",
					"code":  "INVALID_TOKEN",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				config.Logger.Warn("Invalid JWT claims",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid token claims",
					"code":  "INVALID_CLAIMS",
				})
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Token subject required",
					"code":  "INVALID_CLAIMS",
				})
			}
			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				config.Logger.Warn("Non-numeric token subject",
					zap.String("sub", sub),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid token subject",
					"code":  "INVALID_CLAIMS",
				})
			}

			role, _ := claims["role"].(string)

			authUser := &AuthUser{
				UserID: userID,
				Role:   model.UserRole(role),
			}

			ctx := context.WithValue(c.Request().Context(), userContextKey, authUser)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("user_id", userID)

			return next(c)
		}
	}
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(c echo.Context) (*AuthUser, error) {
	user, ok := c.Request().Context().Value(userContextKey).(*AuthUser)
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user found in context")
	}
	return user, nil
}

// RequireMentor returns the authenticated user when they carry the
// mentor role.
func RequireMentor(c echo.Context) (*AuthUser, error) {
	user, err := GetUserFromContext(c)
	if err != nil {
		return nil, err
	}
	if !user.IsMentor() {
		return nil, fmt.Errorf("mentor role required")
	}
	return user, nil
}
