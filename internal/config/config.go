package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Server struct {
		Port  string
		Host  string
		Debug bool
	}
	Database struct {
		DSN      string
		Name     string // only used by MongoDB
		RedisURI string
	}
	Resend struct {
		APIKey        string
		DefaultSender string
		AlertEmail    string
	}
	Slack struct {
		WebhookURL string
	}
	Sentry struct {
		DSN string
	}
	Digest struct {
		Schedule string
	}
}

func Load() (*Config, error) {

	envStack := os.Getenv("ENV_STACK")

	if envStack != "" {
		filePath := "./env-files/.env." + envStack
		err := godotenv.Load(filePath)
		if err != nil {
			fmt.Printf("Error loading .env file: %s\n", err)
		}
	}

	c := &Config{}

	c.Server.Port = os.Getenv("SERVER_PORT")
	if c.Server.Port == "" {
		c.Server.Port = "1926"
	}

	c.Server.Host = os.Getenv("SERVER_HOST")
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}

	c.Server.Debug = os.Getenv("ENABLE_DEBUG") == "true"

	c.Database.DSN = os.Getenv("DATABASE_DSN")
	c.Database.Name = os.Getenv("DATABASE_NAME")
	if c.Database.Name == "" {
		c.Database.Name = "course_feedback"
	}
	c.Database.RedisURI = os.Getenv("REDIS_URI")

	c.Resend.APIKey = os.Getenv("RESEND_API_KEY")
	c.Resend.DefaultSender = os.Getenv("RESEND_DEFAULT_SENDER")
	if c.Resend.DefaultSender == "" {
		c.Resend.DefaultSender = "noreply@course-feedback.local"
	}
	c.Resend.AlertEmail = os.Getenv("FEEDBACK_ALERT_EMAIL")

	c.Slack.WebhookURL = os.Getenv("SLACK_WEBHOOK_URL")

	c.Sentry.DSN = os.Getenv("SENTRY_DSN")

	c.Digest.Schedule = os.Getenv("DIGEST_SCHEDULE")
	if c.Digest.Schedule != "" {
		if _, err := cron.ParseStandard(c.Digest.Schedule); err != nil {
			return c, fmt.Errorf("DIGEST_SCHEDULE is not a valid cron expression %q: %w", c.Digest.Schedule, err)
		}
	}

	return c, nil
}
