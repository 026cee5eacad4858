// Package store is the persistence layer for feedback records. It only ever
// inserts a record or lists every record, newest first.
package store

import (
	"context"
	"strings"

	"course-feedback/internal/models"
)

// FeedbackStore is implemented by every backing database.
type FeedbackStore interface {
	// Insert stores f, filling in its ID and CreatedAt.
	Insert(ctx context.Context, f *models.Feedback) error
	// ListRecent returns all records ordered by creation time, newest first.
	ListRecent(ctx context.Context) ([]models.Feedback, error)
	Close(ctx context.Context) error
}

// IsMongoDSN reports whether dsn points at a MongoDB deployment.
func IsMongoDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "mongodb://") || strings.HasPrefix(dsn, "mongodb+srv://")
}

// IsSQLiteDSN reports whether dsn is a SQLite file or in-memory database.
func IsSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "file:")
}
