package handlers

import (
	"course-feedback/internal/config"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// SetupSentry initializes the sentry client and its echo middleware.
// Without a DSN, error capture stays disabled.
func SetupSentry(e *echo.Echo, cfg *config.Config) {
	if cfg.Sentry.DSN == "" {
		e.Logger.Warn("SENTRY_DSN not configured, error reporting will be disabled")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		AttachStacktrace: true,
		Debug:            cfg.Server.Debug,
	})
	if err != nil {
		e.Logger.Warnf("Sentry initialization failed: %v", err)
		return
	}

	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
}

// CaptureError reports err to sentry. It is a no-op when sentry is not set up.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}
