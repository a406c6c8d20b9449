// Package gormrepos stores users, assignments and submissions in MySQL through gorm.
package gormrepos

import (
	"fmt"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trezcool/edtrack/core"
)

type (
	// binary collations keep username and password comparisons exact.
	// MySQL cannot put a unique index on TEXT, so usernames are capped at 191 chars.
	userRow struct {
		ID       int64  `gorm:"primaryKey"`
		Username string `gorm:"type:varchar(191) COLLATE utf8mb4_bin;not null;uniqueIndex"`
		Password string `gorm:"type:text COLLATE utf8mb4_bin;not null"`
		Role     string `gorm:"type:text;not null"`
	}

	assignmentRow struct {
		ID          int64     `gorm:"primaryKey"`
		Title       string    `gorm:"type:text;not null"`
		Description string    `gorm:"type:text;not null"`
		CreatedBy   int64     `gorm:"not null"`
		CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	}

	// no FK on AssignmentID: submissions are accepted for unknown assignments
	submissionRow struct {
		ID           int64     `gorm:"primaryKey"`
		AssignmentID int64     `gorm:"not null;index"`
		StudentID    int64     `gorm:"not null"`
		FilePath     string    `gorm:"type:text;not null"`
		SubmittedAt  time.Time `gorm:"not null"`
	}
)

func (userRow) TableName() string       { return "users" }
func (assignmentRow) TableName() string { return "assignments" }
func (submissionRow) TableName() string { return "submissions" }

// DSN builds the MySQL data source name from the database config.
func DSN(conf *core.Config) string {
	q := make(url.Values)
	q.Set("charset", "utf8mb4")
	q.Set("parseTime", "true")
	q.Set("loc", "UTC")
	if !conf.Database.DisableTLS {
		q.Set("tls", "true")
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s)/%s?%s",
		conf.Database.User, conf.Database.Password, conf.Database.Address(), conf.Database.Name, q.Encode(),
	)
}

// Open connects to MySQL and migrates the schema.
func Open(conf *core.Config) (*gorm.DB, error) {
	return OpenDSN(DSN(conf), conf.Debug)
}

func OpenDSN(dsn string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Warn
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRow{}, &assignmentRow{}, &submissionRow{}); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
