package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENV_STACK", "SERVER_PORT", "SERVER_HOST", "ENABLE_DEBUG", "DATABASE_DSN", "DATABASE_NAME",
		"REDIS_URI", "RESEND_API_KEY", "RESEND_DEFAULT_SENDER", "FEEDBACK_ALERT_EMAIL",
		"SLACK_WEBHOOK_URL", "SENTRY_DSN", "DIGEST_SCHEDULE",
	} {
		t.Setenv(key, "")
	}

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1926", c.Server.Port)
	assert.Equal(t, "localhost", c.Server.Host)
	assert.False(t, c.Server.Debug)
	assert.Equal(t, "course_feedback", c.Database.Name)
	assert.Equal(t, "noreply@course-feedback.local", c.Resend.DefaultSender)
	assert.Empty(t, c.Database.DSN)
	assert.Empty(t, c.Digest.Schedule)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENV_STACK", "")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("ENABLE_DEBUG", "true")
	t.Setenv("DATABASE_DSN", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "feedback_test")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/X")
	t.Setenv("FEEDBACK_ALERT_EMAIL", "hod@example.edu")
	t.Setenv("DIGEST_SCHEDULE", "0 18 * * 1-5")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, "0.0.0.0", c.Server.Host)
	assert.True(t, c.Server.Debug)
	assert.Equal(t, "mongodb://localhost:27017", c.Database.DSN)
	assert.Equal(t, "feedback_test", c.Database.Name)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", c.Slack.WebhookURL)
	assert.Equal(t, "hod@example.edu", c.Resend.AlertEmail)
	assert.Equal(t, "0 18 * * 1-5", c.Digest.Schedule)
}

func TestLoad_InvalidDigestSchedule(t *testing.T) {
	t.Setenv("ENV_STACK", "")
	t.Setenv("DIGEST_SCHEDULE", "every evening")

	_, err := Load()
	assert.Error(t, err)
}
