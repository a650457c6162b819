// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"release-desk/database"
	"release-desk/internal/domain/music"
	"release-desk/internal/domain/publishing"
	"release-desk/internal/domain/tasks"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens a migrated SQLite database in the test's temp dir. A single
// connection keeps concurrent transactions serialised instead of failing with SQLITE_BUSY.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "release-desk.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: database.NewGormLogger(zap.NewNop())})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// CreateTestRelease inserts a release with the given split shares keyed by name.
func CreateTestRelease(t *testing.T, db *gorm.DB, title string, splits map[string]float64) music.Release {
	t.Helper()

	r := music.Release{Title: title, Artist: "Void Runner", Genre: "Darksynth", Status: music.StatusSubmitted}
	for name, share := range splits {
		r.Splits = append(r.Splits, music.ReleaseSplit{Name: name, Share: share})
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("Failed to create test release: %v", err)
	}
	return r
}

// CreateTestBook inserts a draft book with chapters numbered by their position.
func CreateTestBook(t *testing.T, db *gorm.DB, title string, chapterTitles ...string) publishing.Book {
	t.Helper()

	b := publishing.Book{Title: title, Author: "Alex Chen", Genre: "Sci-Fi", Status: publishing.StatusDraft}
	for i, ct := range chapterTitles {
		b.Chapters = append(b.Chapters, publishing.BookChapter{ChapterOrder: i, Title: ct, Content: ct + " body"})
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("Failed to create test book: %v", err)
	}
	return b
}

// CreateTestTask inserts a task into the table for kind.
func CreateTestTask(t *testing.T, db *gorm.DB, kind tasks.Kind, text string, due *time.Time) tasks.Task {
	t.Helper()

	task := tasks.Task{Text: text, DueDate: due}
	if err := db.Table(kind.Table()).Create(&task).Error; err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task
}

func Date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}
