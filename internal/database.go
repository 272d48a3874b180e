package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenGorm wraps an existing connection pool so gorm and sqlx share it.
func OpenGorm(sqlDB *sql.DB, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
}

// IsDuplicateKey reports unique constraint violations from either dialect.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// IsNotFound reports gorm's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// CreateWithCode inserts row and then sets its business code, e.g. STU00042,
// from the id the database assigned. code and id point into row. Call it
// inside a transaction so the placeholder is never visible to readers.
func CreateWithCode(tx *gorm.DB, row interface{}, code *string, id *int64, column, prefix string) error {
	*code = pendingCode()
	if err := tx.Create(row).Error; err != nil {
		return err
	}
	*code = FormatCode(prefix, *id)
	return tx.Model(row).Update(column, *code).Error
}

// FormatCode renders a business code from a row id.
func FormatCode(prefix string, id int64) string {
	return fmt.Sprintf("%s%05d", prefix, id)
}

// pendingCode fits the 20 character code columns and is unique per insert.
func pendingCode() string {
	return "~" + strings.ReplaceAll(uuid.NewString(), "-", "")[:19]
}
