// Package dbtest opens throwaway SQLite databases with the full schema for tests.
package dbtest

import (
	"fmt"
	"testing"

	"cinelibri/database"
	"cinelibri/internal/microservices/http-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// New returns a migrated in-memory database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on the same database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user with a derived email and returns it.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		AvatarURL: "https://img.example.com/" + username + ".png",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
