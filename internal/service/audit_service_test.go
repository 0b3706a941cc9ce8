package service

import (
	"context"
	"errors"
	"testing"

	"hospital-appointment-service/internal/domain/entity"
	domainRepo "hospital-appointment-service/internal/domain/repository"
	"hospital-appointment-service/internal/repository"
	"hospital-appointment-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuditService_WritesInsideTransaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	auditRepo := repository.NewAuditLogRepository()
	audit := NewAuditService(testutil.NewLogger(), auditRepo)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		return audit.LogUpdate(ctx, tx, entity.AuditActionDoctorApprove, "doctor", "d1",
			map[string]bool{"approved": false}, map[string]bool{"approved": true})
	})
	require.NoError(t, err)

	logs, err := auditRepo.FindByEntity(db, "doctor", "d1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionDoctorApprove, logs[0].Action)
	assert.Equal(t, map[string]interface{}{"approved": true}, logs[0].Metadata["new_value"])
}

func TestAuditService_RolledBackWithTransaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	auditRepo := repository.NewAuditLogRepository()
	audit := NewAuditService(testutil.NewLogger(), auditRepo)
	ctx := context.Background()

	_ = db.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, audit.LogDelete(ctx, tx, entity.AuditActionAppointmentCancel, "appointment", "a1", "old"))
		return gorm.ErrInvalidTransaction
	})

	logs, err := auditRepo.FindAll(db, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

// failingAuditRepo inserts the row and then reports an error
type failingAuditRepo struct {
	domainRepo.AuditLogRepository
}

func (r failingAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	if err := r.AuditLogRepository.Create(db, log); err != nil {
		return err
	}
	return errors.New("audit sink unavailable")
}

func TestAuditService_FailedWriteKeepsCallerTransaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	auditRepo := repository.NewAuditLogRepository()
	audit := NewAuditService(testutil.NewLogger(), failingAuditRepo{auditRepo})
	ctx := context.Background()

	var patient *entity.User
	err := db.Transaction(func(tx *gorm.DB) error {
		patient = testutil.CreatePatient(t, tx, "Pat")
		assert.Error(t, audit.LogCreate(ctx, tx, entity.AuditActionAppointmentCreate, "appointment", "a1", "new"))
		return nil
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Where("id = ?", patient.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	logs, err := auditRepo.FindAll(db, 0)
	require.NoError(t, err)
	assert.Empty(t, logs, "partial audit row is rolled back to the savepoint")
}
