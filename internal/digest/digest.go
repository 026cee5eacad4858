// Package digest periodically posts a dashboard summary to the staff channel.
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"course-feedback/internal/aggregate"
	"course-feedback/internal/notifications"
	"course-feedback/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
)

const runTimeout = 30 * time.Second

// Manager schedules the digest job.
type Manager struct {
	cron     *cron.Cron
	store    store.FeedbackStore
	notifier notifications.Notifier
	logger   echo.Logger
}

func NewManager(s store.FeedbackStore, n notifications.Notifier, logger echo.Logger) *Manager {
	return &Manager{
		cron:     cron.New(),
		store:    s,
		notifier: n,
		logger:   logger,
	}
}

// Start registers the digest under a standard five-field cron schedule and
// starts the scheduler.
func (m *Manager) Start(schedule string) error {
	if _, err := m.cron.AddFunc(schedule, func() {
		if err := m.Run(context.Background()); err != nil {
			m.logger.Errorf("feedback digest failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling digest %q: %w", schedule, err)
	}
	m.cron.Start()
	m.logger.Infof("Feedback digest scheduled: %s", schedule)
	return nil
}

func (m *Manager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
}

// Run builds the dashboard from a fresh snapshot and publishes it once.
func (m *Manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	records, err := m.store.ListRecent(ctx)
	if err != nil {
		return fmt.Errorf("loading feedback: %w", err)
	}
	return m.notifier.Publish(ctx, Format(aggregate.Build(records)))
}

// Format renders the digest message.
func Format(d aggregate.Dashboard) string {
	var b strings.Builder
	s := d.Summary
	b.WriteString("*Course feedback digest*\n")
	fmt.Fprintf(&b, "Responses: %d | Average rating: %s\n", s.TotalFeedback, s.AverageRating)
	fmt.Fprintf(&b, "Best rated faculty: %s\n", s.BestFaculty)
	fmt.Fprintf(&b, "Most rated subject: %s\n", s.MostRatedSubject)

	b.WriteString("Ratings:")
	for _, rc := range d.RatingDistribution {
		fmt.Fprintf(&b, " %d★=%d", rc.Rating, rc.Count)
	}

	if len(d.TopNegative) > 0 {
		b.WriteString("\nNeeds attention:")
		for _, f := range d.TopNegative {
			fmt.Fprintf(&b, "\n- %s / %s (%d/5): %s", f.Subject, f.FacultyName, f.Rating, f.CommentText())
		}
	}
	return b.String()
}
