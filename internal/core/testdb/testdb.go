// Package testdb opens migrated in-memory sqlite databases for repository tests.
package testdb

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/attendance"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/audit"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/exam"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/fee"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/library"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/message"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/schoolclass"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/teacher"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/transit"
	"github.com/frahmantamala/edumaster/internal/core/datamodel/user"
)

// Models is every gorm model, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.Permission{},
		&user.Role{},
		&user.User{},
		&academic.Session{},
		&teacher.Teacher{},
		&schoolclass.Class{},
		&student.Student{},
		&schoolclass.ClassStudent{},
		&academic.History{},
		&academic.PromotionRequest{},
		&academic.TransferRequest{},
		&attendance.Attendance{},
		&fee.Fee{},
		&exam.Exam{},
		&exam.Result{},
		&library.Book{},
		&library.BookIssue{},
		&transit.Route{},
		&transit.RouteStudent{},
		&message.Message{},
		&audit.ActivityLog{},
	}
}

// Open returns a fresh in-memory database. The pool is pinned to a single
// connection since every sqlite :memory: connection is a separate database.
func Open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, err
	}
	return db, nil
}
