package testutil

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			dbErr = err
			return
		}

		if err := autoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func SeedUser(tb testing.TB, tx *gorm.DB) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	user := &types.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
	}
	if err := tx.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return user
}

func SeedCourse(tb testing.TB, tx *gorm.DB, userID uuid.UUID, name string, totalHours float64, deadline time.Time) *types.Course {
	tb.Helper()
	course := &types.Course{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               name,
		TotalHoursRequired: totalHours,
		Deadline:           deadline,
	}
	if err := tx.Create(course).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return course
}

func SeedSession(tb testing.TB, tx *gorm.DB, userID, courseID uuid.UUID, hours float64, sessionDate time.Time) *types.StudySession {
	tb.Helper()
	session := &types.StudySession{
		ID:           uuid.New(),
		UserID:       userID,
		CourseID:     courseID,
		HoursStudied: hours,
		SessionDate:  sessionDate,
	}
	if err := tx.Create(session).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return session
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Course{},
		&types.StudySession{},
		&types.AICallLog{},
	)
}
