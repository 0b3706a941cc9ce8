package repository

import (
	"testing"

	"hospital-appointment-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository_CompareAndSet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSlotRepository()
	doctor := testutil.CreateDoctor(t, db, "Dr. Grey", "Cardiology", true, testutil.Slot("2024-04-10", "09:00"))
	slotID := doctor.AvailableSlots[0].ID

	affected, err := repo.MarkBooked(db, slotID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.MarkBooked(db, slotID)
	require.NoError(t, err)
	assert.Zero(t, affected, "a booked slot cannot be booked again")

	affected, err = repo.Release(db, slotID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Release(db, slotID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.MarkBooked(db, 9999)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSlotRepository_Lookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSlotRepository()
	doctor := testutil.CreateDoctor(t, db, "Dr. Grey", "Cardiology", true,
		testutil.Slot("2024-04-10", "09:00"),
		testutil.Slot("2024-04-10", "10:00"),
		testutil.Slot("2024-04-10", "09:00"))

	_, err := repo.MarkBooked(db, doctor.AvailableSlots[1].ID)
	require.NoError(t, err)

	free, err := repo.FindFreeByDoctorID(db, doctor.ID)
	require.NoError(t, err)
	require.Len(t, free, 2)
	assert.Equal(t, doctor.AvailableSlots[0].ID, free[0].ID)
	assert.Equal(t, doctor.AvailableSlots[2].ID, free[1].ID)

	matching, err := repo.FindByDoctorAndTime(db, doctor.ID, "2024-04-10", "09:00")
	require.NoError(t, err)
	assert.Len(t, matching, 2)

	missing, err := repo.FindByID(db, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
