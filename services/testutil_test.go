package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jalencar/clean-blog/database"
	"github.com/jalencar/clean-blog/models"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDatabase opens a throwaway sqlite file. A file rather than
// :memory: because the connection pool would otherwise give each
// connection its own empty database.
func newTestDatabase(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.BlogPost{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return database.New(db)
}

func registerTestUser(t *testing.T, auth *AuthService, name, email string) *models.User {
	t.Helper()

	user, err := auth.Register(name, email, "password123")
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return user
}
