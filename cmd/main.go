package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/hirewise/config"
	"github.com/lshigami/hirewise/database"
	_ "github.com/lshigami/hirewise/docs" // Swagger docs
	"github.com/lshigami/hirewise/internal/cache"
	interviewctrl "github.com/lshigami/hirewise/internal/controller/interview"
	resumectrl "github.com/lshigami/hirewise/internal/controller/resume"
	"github.com/lshigami/hirewise/internal/event"
	"github.com/lshigami/hirewise/internal/logger"
	"github.com/lshigami/hirewise/internal/metrics"
	"github.com/lshigami/hirewise/internal/model"
	"github.com/lshigami/hirewise/internal/repository"
	"github.com/lshigami/hirewise/internal/service"
	"github.com/lshigami/hirewise/internal/storage"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title HireWise API
// @version 1.0
// @description Resume analysis against a job description and AI mock interviews with per-answer scoring.
// @host localhost:8080
// @BasePath /api
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // *gorm.DB, nil without DATABASE_HOST
			NewGinEngine,
		),

		// Infrastructure. Each piece falls back to an in-process stand-in
		// when it is not configured.
		fx.Provide(
			cache.NewAnalysisCache,
			storage.NewResumeStore,
			event.NewPublisher,
		),

		fx.Provide(
			repository.NewResumeAnalysisRepository,
			repository.NewInterviewSessionRepository,
		),

		fx.Provide(
			service.NewGeminiLLMService,
			service.NewDocumentExtractor,
			service.NewInterviewService,
			service.NewInterviewHistoryService,
			service.NewResumeAnalysisService,
		),

		fx.Provide(
			interviewctrl.NewInterviewController,
			resumectrl.NewResumeController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterCloseHooks),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", metrics.Handler())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	interviewCtrl *interviewctrl.InterviewController,
	resumeCtrl *resumectrl.ResumeController,
) {
	api := router.Group("/api")
	resumeCtrl.RegisterRoutes(api)
	interviewCtrl.RegisterRoutes(api)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("HireWise API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// RegisterCloseHooks releases the connections opened by the providers.
func RegisterCloseHooks(lc fx.Lifecycle, analysisCache cache.AnalysisCache, publisher event.Publisher, llm service.GeminiLLMService) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			var errs []error
			errs = append(errs, analysisCache.Close(), publisher.Close())
			if c, ok := llm.(io.Closer); ok {
				errs = append(errs, c.Close())
			}
			return errors.Join(errs...)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	if db == nil {
		log.Warn().Msg("Skipping database migrations, no database configured")
		return nil
	}
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.ResumeAnalysis{},
		&model.InterviewSession{},
		&model.SessionAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
