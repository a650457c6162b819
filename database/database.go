package database

import (
	"fmt"
	"time"

	"release-desk/internal/domain/appconfig"
	"release-desk/internal/domain/music"
	"release-desk/internal/domain/publishing"
	"release-desk/internal/domain/tasks"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB connects to Postgres and migrates every model.
func InitDB(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: NewGormLogger(logger)})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Connected and migrated successfully")
	return db, nil
}

// Migrate creates or updates every table. The two task tables share the tasks.Task model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// music
		&music.Release{},
		&music.ReleaseSplit{},

		// publishing
		&publishing.Book{},
		&publishing.BookSplit{},
		&publishing.BookChapter{},
		&publishing.BookIllustration{},

		// singleton
		&appconfig.AppConfig{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	for _, k := range tasks.Kinds() {
		if err := db.Table(k.Table()).AutoMigrate(&tasks.Task{}); err != nil {
			return fmt.Errorf("automigrate %s: %w", k.Table(), err)
		}
	}
	return nil
}

// NewGormLogger routes gorm's slow query and error output through zap.
func NewGormLogger(logger *zap.Logger) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
