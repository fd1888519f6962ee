package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/config"
	"github.com/surveyportal/surveyportal/database"
	_ "github.com/surveyportal/surveyportal/docs" // Swagger docs
	"github.com/surveyportal/surveyportal/internal/controller"
	adminctrl "github.com/surveyportal/surveyportal/internal/controller/admin"
	userctrl "github.com/surveyportal/surveyportal/internal/controller/user"
	"github.com/surveyportal/surveyportal/internal/logger"
	"github.com/surveyportal/surveyportal/internal/middleware"
	"github.com/surveyportal/surveyportal/internal/model"
	"github.com/surveyportal/surveyportal/internal/repository"
	"github.com/surveyportal/surveyportal/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Survey Portal API
// @version 1.0
// @description Department-scoped survey management: surveys with time windows, role-based administration, answer submission and reporting.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewSurveyRepository,
			repository.NewQuestionRepository,
			repository.NewParticipationRepository,
			repository.NewAnswerRepository,
			repository.NewDepartmentRepository,
			repository.NewDocumentRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewSurveyQueryService,
			service.NewSubmissionService,
			service.NewAdminSurveyService,
			service.NewReportService,
			service.NewDocumentService,
		),

		fx.Provide(
			controller.NewAuthController,
			userctrl.NewSurveyController,
			adminctrl.NewSurveyAdminController,
			adminctrl.NewReportController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Attached documents are served straight off the upload directory.
	r.Static("/uploads", cfg.UploadDir)

	return r
}

// RegisterRoutesAndStartServer wires the API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *controller.AuthController,
	surveyCtrl *userctrl.SurveyController,
	adminCtrl *adminctrl.SurveyAdminController,
	reportCtrl *adminctrl.ReportController,
) {
	api := router.Group("/api/v1")

	api.POST("/auth/login", authCtrl.Login)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(cfg.JWTSecret))
	{
		authed.GET("/auth/me", authCtrl.Me)

		authed.GET("/surveys", surveyCtrl.ListSurveys)
		authed.GET("/surveys/assigned", surveyCtrl.ListAssignedSurveys)
		authed.GET("/surveys/participated", surveyCtrl.ListParticipatedSurveys)
		authed.GET("/surveys/:id", surveyCtrl.GetSurvey)
		authed.POST("/surveys/:id/answers", surveyCtrl.SubmitAnswers)

		authed.GET("/departments", surveyCtrl.ListDepartments)
	}

	management := authed.Group("/management")
	management.Use(middleware.RequireManage())
	{
		management.POST("/surveys", adminCtrl.CreateSurvey)
		management.PUT("/surveys/:id", adminCtrl.UpdateSurvey)
		management.DELETE("/surveys/:id", adminCtrl.DeleteSurvey)
		management.POST("/surveys/:id/questions", adminCtrl.AddQuestion)
		management.POST("/surveys/:id/document", adminCtrl.UploadSurveyDocument)
		management.PUT("/questions/:id", adminCtrl.UpdateQuestion)
		management.DELETE("/questions/:id", adminCtrl.DeleteQuestion)
		management.POST("/questions/:id/document", adminCtrl.UploadQuestionDocument)
	}

	reports := authed.Group("/reports")
	reports.Use(middleware.RequireReports())
	{
		reports.GET("/surveys/:id/statistics", reportCtrl.GetStatistics)
		reports.GET("/surveys/:id/participants", reportCtrl.GetParticipants)
		reports.GET("/participations/:id/answers", reportCtrl.GetParticipantAnswers)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Survey Portal API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Department{},
		&model.DepartmentMember{},
		&model.Survey{},
		&model.SurveyDepartment{},
		&model.Question{},
		&model.Option{},
		&model.Participation{},
		&model.Answer{},
		&model.Document{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully")
	return nil
}
