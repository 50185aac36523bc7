package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/telemedika/teleconsult-api/internal/config"
	"github.com/telemedika/teleconsult-api/internal/email"
	"github.com/telemedika/teleconsult-api/internal/handler"
	authHandler "github.com/telemedika/teleconsult-api/internal/handler/auth"
	consultationHandler "github.com/telemedika/teleconsult-api/internal/handler/consultation"
	dashboardHandler "github.com/telemedika/teleconsult-api/internal/handler/dashboard"
	doctorHandler "github.com/telemedika/teleconsult-api/internal/handler/doctor"
	"github.com/telemedika/teleconsult-api/internal/middleware"
	"github.com/telemedika/teleconsult-api/internal/repository/postgres"
	"github.com/telemedika/teleconsult-api/internal/router"
	authService "github.com/telemedika/teleconsult-api/internal/service/auth"
	consultationService "github.com/telemedika/teleconsult-api/internal/service/consultation"
	directoryService "github.com/telemedika/teleconsult-api/internal/service/directory"
	"github.com/telemedika/teleconsult-api/internal/session"
	"github.com/telemedika/teleconsult-api/pkg/auth"
	"github.com/telemedika/teleconsult-api/pkg/logger"
	"github.com/telemedika/teleconsult-api/pkg/meeting"
	"github.com/telemedika/teleconsult-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	sessions, err := session.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer sessions.Close()

	if err := middleware.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	hasher := security.NewBcryptHasher(12)
	emailSvc := email.NewSMTPService(cfg.SMTP)
	rooms := meeting.NewGenerator(cfg.Video.BaseURL)

	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, hasher, emailSvc, sessions)
	consultationSvc := consultationService.NewService(consultationRepo, patientRepo, doctorRepo, rooms)
	directorySvc := directoryService.NewService(doctorRepo, 30*time.Second)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	consultationH := consultationHandler.NewHandler(consultationSvc)
	dashboardH := dashboardHandler.NewHandler(consultationSvc)
	doctorH := doctorHandler.NewHandler(directorySvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		consultationH,
		dashboardH,
		doctorH,
		h,
		router.Config{
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORS:           middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
