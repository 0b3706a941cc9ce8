package usecase_test

import (
	"context"
	"testing"

	"hospital-appointment-service/internal/domain/entity"
	"hospital-appointment-service/internal/repository"
	"hospital-appointment-service/internal/service"
	"hospital-appointment-service/internal/testutil"
	"hospital-appointment-service/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDoctorUsecase(t *testing.T) (*gorm.DB, usecase.DoctorUsecase) {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := testutil.NewLogger()
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())
	return db, usecase.NewDoctorUsecase(db, log, repository.NewDoctorRepository(), auditService)
}

func TestListBySpecialization_OnlyApproved(t *testing.T) {
	db, doctors := newDoctorUsecase(t)
	ctx := context.Background()
	approved := testutil.CreateDoctor(t, db, "Dr. Grey", "Cardiology", true, testutil.Slot("2024-04-10", "09:00"))
	testutil.CreateDoctor(t, db, "Dr. Pending", "Cardiology", false)
	testutil.CreateDoctor(t, db, "Dr. Bones", "Orthopedics", true)

	result, err := doctors.ListBySpecialization(ctx, "Cardiology")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, approved.ID, result[0].ID)
	assert.Equal(t, "Dr. Grey", result[0].Name)
	assert.Len(t, result[0].AvailableSlots, 1)

	empty, err := doctors.ListBySpecialization(ctx, "Dermatology")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestListPendingAndApproved(t *testing.T) {
	db, doctors := newDoctorUsecase(t)
	ctx := context.Background()
	pending := testutil.CreateDoctor(t, db, "Dr. Pending", "Cardiology", false)
	testutil.CreateDoctor(t, db, "Dr. Grey", "Cardiology", true, testutil.Slot("2024-04-10", "09:00"))

	pendingList, err := doctors.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pendingList, 1)
	assert.Equal(t, pending.ID, pendingList[0].ID)
	assert.Equal(t, pending.User.Email, pendingList[0].Email)
	assert.Equal(t, string(entity.RoleDoctor), pendingList[0].Role)
	assert.Nil(t, pendingList[0].AvailableSlots)

	approvedList, err := doctors.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approvedList, 1)
	assert.Len(t, approvedList[0].AvailableSlots, 1)
}

func TestApprove_IsIdempotent(t *testing.T) {
	db, doctors := newDoctorUsecase(t)
	ctx := context.Background()
	doctor := testutil.CreateDoctor(t, db, "Dr. Pending", "Cardiology", false)

	first, err := doctors.Approve(ctx, doctor.ID)
	require.NoError(t, err)
	assert.True(t, first.Approved)

	second, err := doctors.Approve(ctx, doctor.ID)
	require.NoError(t, err)
	assert.True(t, second.Approved)

	logs, err := repository.NewAuditLogRepository().FindByEntity(db, "doctor", doctor.ID.String())
	require.NoError(t, err)
	assert.Len(t, logs, 1, "only the actual change is audited")

	_, err = doctors.Approve(ctx, uuid.New())
	assert.ErrorIs(t, err, usecase.ErrDoctorNotFound)
}
