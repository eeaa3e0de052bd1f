package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// document is one row per (collection, key) with the record as JSONB.
type document struct {
	Collection string         `gorm:"primaryKey;size:64"`
	Key        string         `gorm:"primaryKey;size:255"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (document) TableName() string { return "documents" }

// Postgres stores documents in a JSONB table via GORM.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(cfg *config.Config) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(&document{}, &models.SystemLog{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database connected")
	return &Postgres{db: db}, nil
}

// DB exposes the underlying handle for the system-log sink.
func (s *Postgres) DB() *gorm.DB { return s.db }

func (s *Postgres) Get(ctx context.Context, collection, key string, out any) error {
	var doc document
	err := s.db.WithContext(ctx).First(&doc, "collection = ? AND key = ?", collection, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return json.Unmarshal(doc.Data, out)
}

func (s *Postgres) Put(ctx context.Context, collection, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&document{
		Collection: collection,
		Key:        key,
		Data:       datatypes.JSON(data),
		UpdatedAt:  time.Now().UTC(),
	}).Error
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, collection, key string, fields Fields) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, key, err)
	}
	// JSONB concatenation performs the merge server-side, so concurrent
	// updates to other fields of the same record are not clobbered.
	tx := s.db.WithContext(ctx).Model(&document{}).
		Where("collection = ? AND key = ?", collection, key).
		Update("data", gorm.Expr("data || ?::jsonb", string(patch)))
	if tx.Error != nil {
		return fmt.Errorf("update %s/%s: %w", collection, key, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
