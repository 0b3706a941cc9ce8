package repository

import (
	"testing"

	"hospital-appointment-service/internal/domain/entity"
	"hospital-appointment-service/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorRepository_Approve(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDoctorRepository()
	doctor := testutil.CreateDoctor(t, db, "Dr. Grey", "Cardiology", false)

	for i := 0; i < 2; i++ {
		affected, err := repo.Approve(db, doctor.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	}

	affected, err := repo.Approve(db, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, affected)

	found, err := repo.FindByID(db, doctor.ID)
	require.NoError(t, err)
	assert.True(t, found.Approved)
	assert.Equal(t, "Dr. Grey", found.DisplayName())
}

func TestDoctorRepository_CreateRequiresSharedIdentity(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDoctorRepository()
	user := testutil.CreatePatient(t, db, "Someone")

	err := repo.Create(db, &entity.Doctor{
		ID:             uuid.New(),
		UserID:         user.ID,
		Specialization: "Cardiology",
		LicenseNumber:  "LIC-1",
	})
	assert.ErrorIs(t, err, entity.ErrDoctorIdentityMismatch)

	doctor := &entity.Doctor{UserID: user.ID, Specialization: "Cardiology", LicenseNumber: "LIC-2"}
	require.NoError(t, repo.Create(db, doctor))
	assert.Equal(t, user.ID, doctor.ID)
}
