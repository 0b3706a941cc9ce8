package usecase_test

import (
	"context"
	"testing"

	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/repository"
	"hospital-appointment-service/internal/service"
	"hospital-appointment-service/internal/testutil"
	"hospital-appointment-service/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSlots_AppendsToLedger(t *testing.T) {
	db := testutil.NewTestDB(t)
	log := testutil.NewLogger()
	slots := usecase.NewSlotUsecase(db, log, repository.NewDoctorRepository(), repository.NewSlotRepository(),
		service.NewAuditService(log, repository.NewAuditLogRepository()))
	ctx := context.Background()
	doctor := testutil.CreateDoctor(t, db, "Dr. Grey", "Cardiology", true, testutil.Slot("2024-04-10", "09:00"))

	created, err := slots.AddSlots(ctx, doctor.ID, &dto.CreateSlotsRequest{Slots: []dto.SlotInput{
		{Date: "2024-04-11", Time: "08:00"},
		{Date: "2024-04-09", Time: "17:00"},
	}})
	require.NoError(t, err)
	require.Len(t, created, 2)

	free, err := slots.ListFreeSlots(ctx, doctor.ID)
	require.NoError(t, err)
	require.Len(t, free, 3)
	assert.Equal(t, "2024-04-10", free[0].Date)
	assert.Equal(t, "2024-04-11", free[1].Date)
	assert.Equal(t, "2024-04-09", free[2].Date, "ledger order is insertion order")

	_, err = slots.AddSlots(ctx, uuid.New(), &dto.CreateSlotsRequest{Slots: []dto.SlotInput{{Date: "2024-04-11", Time: "08:00"}}})
	assert.ErrorIs(t, err, usecase.ErrDoctorNotFound)

	_, err = slots.ListFreeSlots(ctx, uuid.New())
	assert.ErrorIs(t, err, usecase.ErrDoctorNotFound)
}
