package database

import (
	"path/filepath"
	"testing"

	"release-desk/internal/domain/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestInitDBRequiresDSN(t *testing.T) {
	db, err := InitDB("", zap.NewNop())
	assert.Nil(t, db)
	assert.EqualError(t, err, "DB_URL not set")
}

func TestMigrateUsesGivenHandle(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "m.db")), &gorm.Config{Logger: NewGormLogger(zap.NewNop())})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migrating twice is a no-op")

	for _, table := range []string{"releases", "release_splits", "books", "book_splits", "book_chapters", "book_illustrations", "app_config"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	for _, k := range tasks.Kinds() {
		assert.True(t, db.Migrator().HasTable(k.Table()), k.Table())
	}
}
