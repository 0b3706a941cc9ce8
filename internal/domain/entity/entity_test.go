package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewBill_Defaults(t *testing.T) {
	bill := NewBill(decimal.NewFromInt(200), nil, nil, nil)

	assert.True(t, decimal.NewFromInt(200).Equal(bill.Amount))
	assert.Equal(t, []string{}, bill.Medicines)
	assert.Equal(t, []string{}, bill.Tests)
	assert.True(t, bill.OtherCharges.IsZero())

	other := decimal.RequireFromString("12.5")
	bill = NewBill(decimal.NewFromInt(200), []string{"aspirin"}, []string{"ECG"}, &other)
	assert.Equal(t, []string{"ECG"}, bill.Tests)
	assert.True(t, other.Equal(bill.OtherCharges))
}

func TestAppointment_CanRestoreSlot(t *testing.T) {
	doctorID := uuid.New()

	assert.True(t, (&Appointment{DoctorID: &doctorID, Date: "2024-04-10", Time: "09:00"}).CanRestoreSlot())
	assert.False(t, (&Appointment{Date: "2024-04-10", Time: "09:00"}).CanRestoreSlot())
	assert.False(t, (&Appointment{DoctorID: &doctorID, Time: "09:00"}).CanRestoreSlot())
	assert.False(t, (&Appointment{DoctorID: &doctorID, Date: "2024-04-10"}).CanRestoreSlot())
}

func TestDoctor_BeforeCreateSharesUserIdentity(t *testing.T) {
	userID := uuid.New()

	doctor := &Doctor{UserID: userID}
	assert.NoError(t, doctor.BeforeCreate(nil))
	assert.Equal(t, userID, doctor.ID)

	mismatched := &Doctor{ID: uuid.New(), UserID: userID}
	assert.ErrorIs(t, mismatched.BeforeCreate(nil), ErrDoctorIdentityMismatch)

	assert.ErrorIs(t, (&Doctor{}).BeforeCreate(nil), ErrDoctorIdentityMismatch)
}

func TestDoctor_DisplayNameAndFreeSlots(t *testing.T) {
	doctor := &Doctor{AvailableSlots: []Slot{
		{ID: 1, IsBooked: true},
		{ID: 2},
	}}
	assert.Equal(t, "Unknown", doctor.DisplayName())

	free := doctor.FreeSlots()
	assert.Len(t, free, 1)
	assert.Equal(t, int64(2), free[0].ID)
}
