package notifications

import (
	"context"
	"fmt"
	"strings"

	"course-feedback/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/slack-go/slack"
)

// Notifier publishes a short text message to the staff channel.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

// SlackNotifier posts to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

func (s *SlackNotifier) Publish(ctx context.Context, message string) error {
	err := slack.PostWebhookContext(ctx, s.webhookURL, &slack.WebhookMessage{Text: message})
	if err != nil {
		return fmt.Errorf("posting slack webhook: %w", err)
	}
	return nil
}

// LogNotifier writes messages to the server log. Used when no webhook is configured.
type LogNotifier struct {
	logger echo.Logger
}

func NewLogNotifier(logger echo.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Publish(ctx context.Context, message string) error {
	l.logger.Infof("[notification] %s", message)
	return nil
}

// FormatFeedbackMessage renders a new submission for the staff channel.
// Anonymous submissions are announced without identity.
func FormatFeedbackMessage(f *models.Feedback) string {
	var b strings.Builder
	b.WriteString("*New course feedback*\n")
	fmt.Fprintf(&b, "Subject: %s (%s)\n", f.Subject, f.Department)
	fmt.Fprintf(&b, "Faculty: %s\n", f.FacultyName)
	fmt.Fprintf(&b, "Rating: %s %d/5\n", strings.Repeat("★", f.Rating), f.Rating)
	fmt.Fprintf(&b, "From: %s", f.DisplayName())
	if f.HasComment() {
		fmt.Fprintf(&b, "\nComment: %s", *f.Comments)
	}
	return b.String()
}
