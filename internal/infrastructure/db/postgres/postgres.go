package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a Postgres-backed gorm handle. TranslateError is enabled so
// driver-specific constraint violations surface as gorm.ErrDuplicatedKey and
// repositories can map them to domain errors.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all authenticator tables.
// The unique indexes on users.username, refresh_tokens.user_id, and
// refresh_tokens.token back the uniqueness invariants the services rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &roleModel{}, &refreshTokenModel{})
}
