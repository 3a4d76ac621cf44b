package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/school-backend/internal/config"
	"github.com/stemsi/school-backend/internal/handler"
	"github.com/stemsi/school-backend/internal/middleware"
	"github.com/stemsi/school-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course  *handler.CourseHandler
	Student *handler.StudentHandler
	System  *handler.SystemHandler
}

// SetupRouter configures the Gin engine with its middleware chain and routes.
// A nil limiter disables rate limiting.
func SetupRouter(
	handlers *Handlers,
	limiter middleware.Limiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// The logger wraps recovery so panicked requests still get a log line.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	if limiter != nil {
		router.Use(middleware.RateLimit(limiter, log))
	}

	router.Use(middleware.Brotli())

	// Every response reflects the live store.
	router.Use(middleware.CacheControl("no-store"))

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Health check.
	router.GET("/health", handlers.System.Health)

	// ─── Courses ───────────────────────────────────────────────────────
	courses := router.Group("/courses")
	{
		courses.GET("", handlers.Course.ListCourses)
		courses.POST("", handlers.Course.CreateCourse)
		courses.GET("/:id", handlers.Course.GetCourse)
		courses.GET("/:id/students", handlers.Course.ListCourseStudents)
		courses.PUT("/:id", handlers.Course.UpdateCourse)
		courses.DELETE("/:id", handlers.Course.DeleteCourse)
		courses.POST("/:id/enroll", handlers.Course.Enroll)
	}

	// ─── Students ──────────────────────────────────────────────────────
	students := router.Group("/students")
	{
		students.GET("", handlers.Student.ListStudents)
		students.POST("", handlers.Student.RegisterStudent)
		students.GET("/:id", handlers.Student.GetStudent)
		students.GET("/:id/courses", handlers.Student.ListStudentCourses)
		students.PUT("/:id", handlers.Student.UpdateStudent)
		students.DELETE("/:id", handlers.Student.DeleteStudent)
	}

	return router
}
