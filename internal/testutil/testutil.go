// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"fmt"
	"io"
	"testing"

	"hospital-appointment-service/internal/domain/entity"
	"hospital-appointment-service/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with foreign keys on and
// the full schema migrated. One connection only, so code under test must run
// in-transaction queries through the transaction handle.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// NewLogger returns a logger that discards output
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func CreatePatient(t *testing.T, db *gorm.DB, name string) *entity.User {
	t.Helper()
	return createUser(t, db, name, entity.RolePatient)
}

// CreateDoctor creates a doctor user, its doctor record and the given slots in order
func CreateDoctor(t *testing.T, db *gorm.DB, name, specialization string, approved bool, slots ...entity.Slot) *entity.Doctor {
	t.Helper()

	user := createUser(t, db, name, entity.RoleDoctor)
	doctor := &entity.Doctor{
		UserID:         user.ID,
		Specialization: specialization,
		LicenseNumber:  "LIC-" + uuid.NewString()[:8],
		Approved:       approved,
	}
	require.NoError(t, db.Omit("User", "AvailableSlots").Create(doctor).Error)

	for i := range slots {
		slots[i].DoctorID = doctor.ID
		require.NoError(t, db.Create(&slots[i]).Error)
	}
	doctor.User = user
	doctor.AvailableSlots = slots
	return doctor
}

// Slot builds an unsaved free slot
func Slot(date, clock string) entity.Slot {
	return entity.Slot{Date: date, Time: clock}
}

func createUser(t *testing.T, db *gorm.DB, name string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:     name,
		Email:    uuid.NewString() + "@hospital.test",
		Password: "secret",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
