package common

import (
	"course-feedback/internal/config"
	"course-feedback/internal/email"
	"course-feedback/internal/metrics"
	"course-feedback/internal/notifications"
	"course-feedback/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// ServerState is the set of dependencies shared by every handler.
type ServerState struct {
	Echo        *echo.Echo
	Config      *config.Config
	Store       store.FeedbackStore
	Redis       *redis.Client
	Notifier    notifications.Notifier
	EmailClient email.EmailClient
	Metrics     *metrics.Metrics
}
