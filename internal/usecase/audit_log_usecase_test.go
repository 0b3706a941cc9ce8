package usecase_test

import (
	"context"
	"testing"

	"hospital-appointment-service/internal/domain/entity"
	"hospital-appointment-service/internal/repository"
	"hospital-appointment-service/internal/testutil"
	"hospital-appointment-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogs_RecordLifecycle(t *testing.T) {
	f := newAppointmentFixture(t, nil)
	ctx := context.Background()
	patient := testutil.CreatePatient(t, f.db, "Pat")
	doctor := testutil.CreateDoctor(t, f.db, "Dr. House", "Cardiology", true, testutil.Slot("2024-04-10", "09:00"))

	appointment, err := f.appointments.CreateAppointment(ctx, bookingRequest(patient.ID, doctor.ID, "2024-04-10", "09:00"))
	require.NoError(t, err)
	require.NoError(t, f.appointments.CancelAppointment(ctx, appointment.ID))

	audit := usecase.NewAuditLogUsecase(f.db, testutil.NewLogger(), repository.NewAuditLogRepository())

	recent, err := audit.GetRecentAuditLogs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, entity.AuditActionAppointmentCancel, recent[0].Action, "newest first")
	assert.Equal(t, entity.AuditActionAppointmentCreate, recent[1].Action)

	limited, err := audit.GetRecentAuditLogs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	history, err := audit.GetEntityAuditLogs(ctx, "appointment", appointment.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.AuditActionAppointmentCreate, history[0].Action)
	assert.Contains(t, history[1].Metadata, "old_value")
}
