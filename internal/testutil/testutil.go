// Package testutil builds migrated SQLite databases and fixtures for tests.
package testutil

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"librarylens/config"
	"librarylens/internal/domain/entity"
	"librarylens/internal/infrastructure/database"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plaintext password of every user created by CreateUser.
const Password = "password123"

// NewDB returns a migrated database in a temp file. A file instead of
// :memory: lets the migrator and the pool share the schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	require.NoError(t, database.Migrate(cfg))

	db, err := database.NewConnection(cfg, logger.Silent)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// NewLogger returns a logger that discards its output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// SeedRoles inserts the default roles and returns them by name.
func SeedRoles(t *testing.T, db *gorm.DB) map[entity.RoleName]entity.Role {
	t.Helper()

	roles := make(map[entity.RoleName]entity.Role, len(entity.DefaultRoles))
	for _, role := range entity.DefaultRoles {
		role := role
		require.NoError(t, db.Create(&role).Error)
		roles[role.Name] = role
	}
	return roles
}

// SeedSettings inserts the purchase settings row.
func SeedSettings(t *testing.T, db *gorm.DB, allow bool, price string) *entity.PurchaseSettings {
	t.Helper()

	settings := &entity.PurchaseSettings{
		AllowStudentPurchases: allow,
		DefaultBookPrice:      decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(settings).Error)
	return settings
}

// CreateUser inserts a user holding role, with Password as its password.
func CreateUser(t *testing.T, db *gorm.DB, username string, role entity.Role) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	require.NoError(t, db.Omit("Role").Create(user).Error)
	user.Role = role
	return user
}

func CreateSection(t *testing.T, db *gorm.DB, name string) *entity.Section {
	t.Helper()

	section := &entity.Section{Name: name, Description: name + " books"}
	require.NoError(t, db.Create(section).Error)
	return section
}

// CreateBook inserts an available book. An empty isbn is stored as NULL.
func CreateBook(t *testing.T, db *gorm.DB, title, author, isbn string, sectionID int) *entity.Book {
	t.Helper()

	book := &entity.Book{
		Title:     title,
		Author:    author,
		Genre:     "General",
		SectionID: sectionID,
		Available: true,
	}
	if isbn != "" {
		book.ISBN = &isbn
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
