package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"course-feedback/internal/common"
	"course-feedback/internal/config"
	"course-feedback/internal/digest"
	"course-feedback/internal/email"
	"course-feedback/internal/handlers"
	"course-feedback/internal/metrics"
	"course-feedback/internal/notifications"
	"course-feedback/internal/store"
	"course-feedback/web"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	resend "github.com/resend/resend-go/v2"
)

type SentryLogger struct {
	echo.Logger
}

func (l *SentryLogger) Error(i ...interface{}) {
	// Capture in Sentry
	if len(i) > 0 {
		if err, ok := i[0].(error); ok {
			handlers.CaptureError(err)
		} else {
			handlers.CaptureError(fmt.Errorf("%v", i...))
		}
	}
	// Call original logger
	l.Logger.Error(i...)
}

type Server struct {
	common.ServerState
	Digest *digest.Manager
}

func New(cfg *config.Config) *Server {
	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Logger = &SentryLogger{Logger: e.Logger}
	e.Logger.SetLevel(log.DEBUG)

	return &Server{
		ServerState: common.ServerState{
			Echo:   e,
			Config: cfg,
		},
	}
}

func (s *Server) Initialize() error {
	if err := s.setupDatabase(); err != nil {
		return err
	}

	s.setupRedis()

	s.setupMetrics()

	s.setupNotifier()

	// Initialize Resend email client
	s.setupEmailClient()

	if err := s.setupTemplates(); err != nil {
		return err
	}

	s.setupRoutes()

	if err := s.setupDigest(); err != nil {
		return err
	}

	// Setup middleware -
	// Keep last to avoid Recover middleware and panic if something goes wrong on init
	s.setupMiddleware()

	return nil
}

func (s *Server) setupDatabase() error {
	dsn := s.Config.Database.DSN
	if dsn == "" {
		return fmt.Errorf("DATABASE_DSN environment variable is required")
	}

	// mongodb:// and mongodb+srv:// go to MongoDB, "file:" to SQLite, anything else to PostgreSQL
	if store.IsMongoDSN(dsn) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ms, err := store.OpenMongo(ctx, dsn, s.Config.Database.Name)
		if err != nil {
			return err
		}
		if err := ms.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("creating feedback indexes: %w", err)
		}
		s.Store = ms
		return nil
	}

	gs, err := store.OpenGorm(dsn)
	if err != nil {
		return err
	}
	if err := gs.Migrate(); err != nil {
		return fmt.Errorf("migrating feedback table: %w", err)
	}
	s.Store = gs
	return nil
}

func (s *Server) setupRedis() {
	url := s.Config.Database.RedisURI

	// Make Redis optional - if URI is empty, skip Redis setup
	if url == "" {
		s.Echo.Logger.Warn("REDIS_URI not configured, duplicate submission protection will be disabled")
		s.Redis = nil
		return
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		s.Echo.Logger.Warnf("Failed to parse Redis URL: %v, Redis features will be disabled", err)
		s.Redis = nil
		return
	}

	s.Redis = redis.NewClient(opts)

	// Validate proper connection, but don't panic on failure
	ctx := context.Background()
	result := s.Redis.Ping(ctx)
	if result.Err() != nil {
		s.Echo.Logger.Warnf("Redis connection failed: %v, Redis features will be disabled", result.Err())
		s.Redis = nil
		return
	}
}

func (s *Server) setupMetrics() {
	s.Metrics = metrics.New()

	// Only register Redis metrics if Redis is available
	if s.Redis != nil {
		s.Metrics.RegisterRedis(s.Redis)
	}
}

func (s *Server) setupNotifier() {
	if s.Config.Slack.WebhookURL == "" {
		s.Notifier = notifications.NewLogNotifier(s.Echo.Logger)
		return
	}
	s.Notifier = notifications.NewSlackNotifier(s.Config.Slack.WebhookURL)
}

func (s *Server) setupEmailClient() {
	apiKey := s.Config.Resend.APIKey
	if apiKey == "" {
		s.Echo.Logger.Warn("RESEND_API_KEY not configured, email notifications will be disabled")
		return
	}

	resendClient := resend.NewClient(apiKey)
	s.EmailClient = email.NewResendEmailClient(resendClient,
		s.Config.Resend.DefaultSender,
		s.Echo.Logger)
}

func (s *Server) setupTemplates() error {
	t, err := web.NewTemplate()
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	s.Echo.Renderer = t
	return nil
}

func (s *Server) setupDigest() error {
	if s.Config.Digest.Schedule == "" {
		return nil
	}
	s.Digest = digest.NewManager(s.Store, s.Notifier, s.Echo.Logger)
	return s.Digest.Start(s.Config.Digest.Schedule)
}

func (s *Server) setupMiddleware() {
	s.Echo.Use(middleware.Logger())
	s.Echo.Use(middleware.CORS())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "course_feedback",
		Registerer: s.Metrics.Registry,
	}))
}

func (s *Server) setupRoutes() {
	handlers.SetupSentry(s.Echo, s.Config)

	feedback := handlers.NewFeedbackHandler(s.ServerState)

	// Pages
	s.Echo.GET("/", feedback.ShowDashboard)
	s.Echo.GET("/submit", feedback.ShowSubmitForm)
	s.Echo.POST("/submit", feedback.SubmitForm)

	// API routes group
	api := s.Echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	api.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Metrics.Registry,
	}))

	api.GET("/dashboard", feedback.Dashboard)
	api.GET("/feedback", feedback.ListFeedback)
	api.POST("/feedback", feedback.SubmitFeedback)
	api.GET("/feedback/export", feedback.ExportCSV)
}

func (s *Server) Start() error {
	serverURL := s.Config.Server.Host + ":" + s.Config.Server.Port
	return s.Echo.Start(serverURL)
}

// Shutdown drains in-flight requests, then stops the digest and closes the
// store and redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Echo.Shutdown(ctx)
	if s.Digest != nil {
		s.Digest.Stop()
	}
	if s.Store != nil {
		if cerr := s.Store.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}
	if s.Redis != nil {
		if cerr := s.Redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
