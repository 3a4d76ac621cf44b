package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/school-backend/internal/config"
	"github.com/stemsi/school-backend/internal/database"
	"github.com/stemsi/school-backend/internal/handler"
	"github.com/stemsi/school-backend/internal/logger"
	"github.com/stemsi/school-backend/internal/middleware"
	"github.com/stemsi/school-backend/internal/repository"
	"github.com/stemsi/school-backend/internal/repository/memstore"
	"github.com/stemsi/school-backend/internal/router"
	"github.com/stemsi/school-backend/internal/service"
	"github.com/stemsi/school-backend/internal/validator"
)

// repositories is the storage backend selected by STORAGE_DRIVER.
type repositories struct {
	courses     repository.CourseRepository
	students    repository.StudentRepository
	enrollments repository.EnrollmentRepository
	health      map[string]handler.Pinger
	close       func()
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("storage", cfg.StorageDriver).
		Msg("Starting School Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Storage ───────────────────────────────────────────────────────
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer repos.close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
		repos.health["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	limiter, stopLimiter := newLimiter(cfg, rdb, log)
	defer stopLimiter()

	// ─── Initialize Services ──────────────────────────────────────────
	courseService := service.NewCourseService(repos.courses, log)
	studentService := service.NewStudentService(repos.students, log)
	enrollmentService := service.NewEnrollmentService(
		repos.enrollments, repos.courses, repos.students,
		service.DefaultEnrollmentLimits, log,
	)
	listingService := service.NewListingService(repos.courses, repos.students, cfg.MaxPageSize)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Course:  handler.NewCourseHandler(courseService, enrollmentService, listingService),
		Student: handler.NewStudentHandler(studentService, enrollmentService, listingService),
		System:  handler.NewSystemHandler(repos.health, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, limiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

func openRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		store := memstore.New()
		return &repositories{
			courses:     store.Courses(),
			students:    store.Students(),
			enrollments: store.Enrollments(),
			health:      map[string]handler.Pinger{},
			close:       func() {},
		}, nil
	case config.StoragePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &repositories{
			courses:     repository.NewCourseRepository(pool),
			students:    repository.NewStudentRepository(pool),
			enrollments: repository.NewEnrollmentRepository(pool),
			health:      map[string]handler.Pinger{"postgres": pool},
			close:       pool.Close,
		}, nil
	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}

// newLimiter picks the shared Redis limiter when Redis is available and the
// in-process one otherwise. RATE_LIMIT_PER_MINUTE=0 disables limiting.
func newLimiter(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) (middleware.Limiter, func()) {
	if cfg.RateLimit <= 0 {
		return nil, func() {}
	}
	if rdb != nil {
		log.Info().Int("per_minute", cfg.RateLimit).Msg("Rate limiting via Redis")
		return middleware.NewRedisLimiter(rdb, cfg.RateLimit, time.Minute), func() {}
	}
	log.Info().Int("per_minute", cfg.RateLimit).Msg("Rate limiting in process")
	rl := middleware.NewMemoryLimiter(cfg.RateLimit, time.Minute)
	return rl, rl.Close
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
