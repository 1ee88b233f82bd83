package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	handlers "github.com/goodspace/oneshot-server/internal/adapter/handler/http"
	"github.com/goodspace/oneshot-server/internal/config"
	"github.com/goodspace/oneshot-server/internal/infrastructure/database"
	"github.com/goodspace/oneshot-server/internal/middleware"
	"github.com/goodspace/oneshot-server/internal/middleware/auth"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	echo    *echo.Echo
	db      *gorm.DB
	repos   *database.Repositories
	storage usecase.FileStorage
	push    usecase.PushSender
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	repos *database.Repositories,
	storage usecase.FileStorage,
	push usecase.PushSender,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config:  cfg,
		logger:  logger,
		echo:    e,
		db:      db,
		repos:   repos,
		storage: storage,
		push:    push,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Initialize services
	notificationService := usecase.NewNotificationService(s.repos.Notification, s.repos.User, s.push, s.logger)
	taskService := usecase.NewTaskService(s.repos.Task, s.repos.File, s.logger)
	mentorTaskService := usecase.NewMentorTaskService(s.repos.Task, s.repos.User, s.repos.File, notificationService, s.logger)
	dashboardService := usecase.NewDashboardService(s.repos.Task, s.repos.User, s.logger)
	reportService := usecase.NewReportService(s.repos.LearningReport, s.repos.User, s.repos.Task, notificationService, s.logger)
	resourceService := usecase.NewResourceService(s.repos.Task, s.repos.User, s.repos.File, s.logger)
	myPageService := usecase.NewMyPageService(s.repos.Task, s.logger)
	fileService := usecase.NewFileService(s.repos.File, s.storage, s.logger)

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService, s.logger)
	mentorHandler := handlers.NewMentorHandler(mentorTaskService, dashboardService, s.logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, s.logger)
	reportHandler := handlers.NewReportHandler(reportService, s.logger)
	resourceHandler := handlers.NewResourceHandler(resourceService, s.logger)
	myPageHandler := handlers.NewMyPageHandler(myPageService, s.logger)
	fileHandler := handlers.NewFileHandler(fileService, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	// API v1 routes, all behind authentication. Mutating requests run in
	// a per-request transaction.
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig), middleware.Transaction(s.db, s.logger))

	// Mentee task routes
	tasks := v1.Group("/tasks")
	tasks.GET("", taskHandler.GetTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)
	tasks.GET("/:id/submission", taskHandler.GetTaskForSubmit)
	tasks.POST("/:id/submission", taskHandler.SubmitTask)
	tasks.PATCH("/:id/completion", taskHandler.UpdateCompleted)
	tasks.GET("/:id/feedback", taskHandler.GetTaskFeedback)

	// Mentor routes
	mentor := v1.Group("/mentor")
	mentor.POST("/mentees/:menteeId/tasks", mentorHandler.CreateTasks)
	mentor.GET("/mentees/:menteeId/tasks", mentorHandler.GetMenteeTasks)
	mentor.GET("/tasks/:id", mentorHandler.GetTask)
	mentor.PUT("/tasks/:id", mentorHandler.UpdateTask)
	mentor.DELETE("/tasks/:id", mentorHandler.DeleteTask)
	mentor.PUT("/tasks/:id/feedback/draft", mentorHandler.SaveDraftFeedback)
	mentor.PUT("/tasks/:id/feedback", mentorHandler.SaveFeedback)
	mentor.DELETE("/tasks/:id/feedback", mentorHandler.DeleteFeedback)
	mentor.GET("/dashboard/feedback-required", mentorHandler.GetFeedbackRequired)
	mentor.GET("/dashboard/pending-uploads", mentorHandler.GetPendingUploads)
	mentor.GET("/dashboard/mentees", mentorHandler.GetMenteeManagement)

	// Study materials
	mentor.POST("/mentees/:menteeId/resources", resourceHandler.CreateResource)
	mentor.GET("/mentees/:menteeId/resources", resourceHandler.GetMenteeResources)
	mentor.PUT("/resources/:id", resourceHandler.UpdateResource)
	mentor.DELETE("/resources/:id", resourceHandler.DeleteResource)
	resources := v1.Group("/resources")
	resources.GET("", resourceHandler.GetResources)
	resources.GET("/:id", resourceHandler.GetResource)

	// My page
	mypage := v1.Group("/mypage")
	mypage.GET("/learning-status", myPageHandler.GetLearningStatus)
	mypage.GET("/learning-status/:subject", myPageHandler.GetLearningStatusBySubject)

	// Learning reports
	mentor.POST("/mentees/:menteeId/reports", reportHandler.CreateReport)
	mentor.GET("/mentees/:menteeId/reports", reportHandler.GetReport)
	mentor.GET("/mentees/:menteeId/reports/exists", reportHandler.ReportExists)
	reports := v1.Group("/reports")
	reports.GET("", reportHandler.GetReceivedReport)
	reports.GET("/count", reportHandler.CountReceivedReports)
	reports.GET("/:id", reportHandler.GetReceivedReportByID)

	// Notifications
	notifications := v1.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/count", notificationHandler.GetNewCount)
	notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
	notifications.POST("/fcm-token", notificationHandler.RegisterFCMToken)

	// Files
	files := v1.Group("/files")
	files.POST("", fileHandler.Upload)
	files.GET("/:id/url", fileHandler.GetDownloadURL)
	files.DELETE("/:id", fileHandler.Delete)
}
