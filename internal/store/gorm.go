package store

import (
	"context"
	"fmt"

	"course-feedback/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore keeps feedback in a SQL database through gorm.
type GormStore struct {
	DB *gorm.DB
}

// OpenGorm connects to SQLite for "file:" DSNs and PostgreSQL otherwise.
func OpenGorm(dsn string) (*GormStore, error) {
	cfg := &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)}

	var dialector gorm.Dialector
	if IsSQLiteDSN(dsn) {
		dialector = sqlite.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewGormStore(db), nil
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Migrate creates or updates the feedback table.
func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&models.Feedback{})
}

func (s *GormStore) Insert(ctx context.Context, f *models.Feedback) error {
	if err := s.DB.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

func (s *GormStore) ListRecent(ctx context.Context) ([]models.Feedback, error) {
	records := []models.Feedback{}
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	return records, nil
}

func (s *GormStore) Close(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
