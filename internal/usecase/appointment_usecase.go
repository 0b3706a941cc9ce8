package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-appointment-service/internal/converter"
	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/domain/entity"
	"hospital-appointment-service/internal/domain/repository"
	"hospital-appointment-service/internal/service"
	"hospital-appointment-service/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrPatientNotFound        = errors.New("patient not found")
	ErrSlotAlreadyBooked      = errors.New("slot is already booked")
	ErrCheckoutFieldsRequired = errors.New("bill amount and medicines are required")
	ErrPrescriptionNotFound   = errors.New("prescription not found")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]dto.AppointmentResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) ([]dto.AppointmentResponse, error)
	GetConfirmedAppointments(ctx context.Context) ([]dto.AppointmentResponse, error)
	GetCompletedAppointments(ctx context.Context) ([]dto.CompletedAppointmentResponse, error)
	CheckIn(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	CheckOut(ctx context.Context, appointmentID uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	doctorRepo       repository.DoctorRepository
	slotRepo         repository.SlotRepository
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	auditService     service.AuditService
	slotLocker       service.SlotLocker
	metrics          *metrics.Metrics
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	auditService service.AuditService,
	slotLocker service.SlotLocker,
	m *metrics.Metrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		doctorRepo:       doctorRepo,
		slotRepo:         slotRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		auditService:     auditService,
		slotLocker:       slotLocker,
		metrics:          m,
	}
}

// CreateAppointment books an appointment and its slot in one transaction.
//
// Flow:
// 1. Validate patient and doctor exist
// 2. Take the per-slot lock (Redis, when configured)
// 3. In a transaction: compare-and-set the first free matching slot, insert the appointment
//
// A time the doctor has slots for but none free is rejected. A time with no slot
// at all is still booked, without a slot.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.userRepo.FindByID(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	release, err := u.slotLocker.Acquire(ctx, req.DoctorID, req.Date, req.Time)
	if err != nil {
		if errors.Is(err, service.ErrSlotBusy) {
			u.metrics.RecordAppointment(metrics.OutcomeConflict)
		}
		return nil, err
	}
	defer release()

	doctorID := req.DoctorID
	appointment := &entity.Appointment{
		PatientID: req.PatientID,
		DoctorID:  &doctorID,
		Date:      req.Date,
		Time:      req.Time,
		Age:       req.Age,
		Gender:    req.Gender,
		Phone:     req.Phone,
		Reason:    req.Reason,
		Status:    entity.AppointmentStatusConfirmed,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		slotID, err := u.bookSlot(tx, doctorID, req.Date, req.Time)
		if err != nil {
			return err
		}
		appointment.SlotID = slotID

		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotAlreadyBooked) {
			u.metrics.RecordAppointment(metrics.OutcomeConflict)
		}
		return nil, err
	}

	if appointment.SlotID != nil {
		u.metrics.RecordAppointment(metrics.OutcomeBooked)
	} else {
		u.metrics.RecordAppointment(metrics.OutcomeUnslotted)
		u.log.Warnf("Appointment %s booked without a matching slot: doctor=%s date=%s time=%s", appointment.ID, doctorID, req.Date, req.Time)
	}

	u.log.Infof("Appointment created: id=%s, patient=%s, doctor=%s, date=%s, time=%s", appointment.ID, req.PatientID, doctorID, req.Date, req.Time)
	return converter.AppointmentToResponse(appointment), nil
}

// bookSlot flips the first free slot at (date, time) to booked.
// Returns nil when the doctor has no slot at that time.
func (u *appointmentUsecase) bookSlot(tx *gorm.DB, doctorID uuid.UUID, date, clock string) (*int64, error) {
	slots, err := u.slotRepo.FindByDoctorAndTime(tx, doctorID, date, clock)
	if err != nil {
		u.log.Warnf("Failed to find slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}

	for _, slot := range slots {
		if slot.IsBooked {
			continue
		}
		affected, err := u.slotRepo.MarkBooked(tx, slot.ID)
		if err != nil {
			u.log.Warnf("Failed to book slot %d: %+v", slot.ID, err)
			return nil, err
		}
		if affected == 1 {
			slotID := slot.ID
			return &slotID, nil
		}
	}

	return nil, ErrSlotAlreadyBooked
}

func (u *appointmentUsecase) GetPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) ([]dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) GetConfirmedAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByStatus(u.db.WithContext(ctx), entity.AppointmentStatusConfirmed)
	if err != nil {
		u.log.Warnf("Failed to find confirmed appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

// GetCompletedAppointments attaches each appointment's prescription, or null when none exists
func (u *appointmentUsecase) GetCompletedAppointments(ctx context.Context) ([]dto.CompletedAppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointments, err := u.appointmentRepo.FindByStatus(db, entity.AppointmentStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to find completed appointments: %+v", err)
		return nil, err
	}

	ids := make([]uuid.UUID, len(appointments))
	for i, appointment := range appointments {
		ids[i] = appointment.ID
	}

	prescriptions, err := u.prescriptionRepo.FindByAppointmentIDs(db, ids)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for completed appointments: %+v", err)
		return nil, err
	}

	return converter.CompletedAppointmentsToResponses(appointments, prescriptions), nil
}

// CheckIn does not look at the current status: any appointment can be checked in.
func (u *appointmentUsecase) CheckIn(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	var appointment *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.CheckIn(tx, appointmentID, time.Now().UTC())
		if err != nil {
			u.log.Warnf("Failed to check in appointment %s: %+v", appointmentID, err)
			return err
		}
		if affected == 0 {
			return ErrAppointmentNotFound
		}

		appointment, err = u.appointmentRepo.FindByID(tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionAppointmentCheckIn, "appointment", appointmentID.String(),
			nil, map[string]interface{}{"status": appointment.Status, "checkedInAt": appointment.CheckedInAt}); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.RecordAppointment(metrics.OutcomeCheckedIn)
	u.log.Infof("Appointment checked in: id=%s", appointmentID)
	return converter.AppointmentToResponse(appointment), nil
}

// CheckOut records the bill on the appointment's prescription and completes the
// appointment. Both writes commit together or not at all.
func (u *appointmentUsecase) CheckOut(ctx context.Context, appointmentID uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if req.BillAmount == nil || req.BillAmount.IsZero() || req.Medicines == nil {
		return nil, ErrCheckoutFieldsRequired
	}

	now := time.Now().UTC()
	bill := entity.NewBill(*req.BillAmount, req.Medicines, req.Tests, req.OtherCharges)

	var (
		prescription *entity.Prescription
		appointment  *entity.Appointment
	)

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		prescription, err = u.prescriptionRepo.FindByAppointmentID(tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find prescription for appointment %s: %+v", appointmentID, err)
			return err
		}
		if prescription == nil {
			return ErrPrescriptionNotFound
		}

		prescription.Bill = bill
		prescription.CompletedAt = &now
		if req.Notes != "" {
			prescription.Notes = req.Notes
		}
		if err := u.prescriptionRepo.Update(tx, prescription); err != nil {
			u.log.Warnf("Failed to record bill for appointment %s: %+v", appointmentID, err)
			return err
		}

		affected, err := u.appointmentRepo.Complete(tx, appointmentID, now)
		if err != nil {
			u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
			return err
		}
		if affected == 0 {
			return ErrAppointmentNotFound
		}

		appointment, err = u.appointmentRepo.FindByID(tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionAppointmentCheckOut, "appointment", appointmentID.String(),
			nil, converter.BillToResponse(bill)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.RecordAppointment(metrics.OutcomeCompleted)
	u.log.Infof("Appointment checked out: id=%s, bill=%s", appointmentID, bill.Amount)
	return &dto.CheckoutResponse{
		Prescription: converter.PrescriptionToResponse(prescription),
		Appointment:  converter.AppointmentToResponse(appointment),
	}, nil
}

// CancelAppointment deletes the appointment and gives its time back to the doctor
// in the same transaction. The booked slot is freed in place when it still exists,
// otherwise a new free slot with the same date and time is appended. Without a
// doctor, date or time nothing is restored and the cancellation still succeeds.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	outcome := ""

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		affected, err := u.appointmentRepo.Delete(tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to delete appointment %s: %+v", appointmentID, err)
			return err
		}
		if affected == 0 {
			return ErrAppointmentNotFound
		}

		outcome, err = u.restoreSlot(tx, appointment)
		if err != nil {
			return err
		}

		if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), converter.AppointmentToResponse(appointment)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.metrics.RecordAppointment(metrics.OutcomeCancelled)
	if outcome != "" {
		u.metrics.RecordAppointment(outcome)
	}
	u.log.Infof("Appointment cancelled: id=%s, slot=%q", appointmentID, outcome)
	return nil
}

// restoreSlot returns the metrics outcome of the restoration, empty when skipped
func (u *appointmentUsecase) restoreSlot(tx *gorm.DB, appointment *entity.Appointment) (string, error) {
	if !appointment.CanRestoreSlot() || appointment.Doctor == nil {
		return "", nil
	}

	if appointment.SlotID != nil {
		affected, err := u.slotRepo.Release(tx, *appointment.SlotID)
		if err != nil {
			u.log.Warnf("Failed to release slot %d: %+v", *appointment.SlotID, err)
			return "", err
		}
		if affected == 1 {
			return metrics.OutcomeSlotRestore, nil
		}

		slot, err := u.slotRepo.FindByID(tx, *appointment.SlotID)
		if err != nil {
			u.log.Warnf("Failed to find slot %d: %+v", *appointment.SlotID, err)
			return "", err
		}
		if slot != nil {
			// already free
			return "", nil
		}
	}

	restored := []entity.Slot{{
		DoctorID: *appointment.DoctorID,
		Date:     appointment.Date,
		Time:     appointment.Time,
	}}
	if err := u.slotRepo.CreateBatch(tx, restored); err != nil {
		u.log.Warnf("Failed to append slot for doctor %s: %+v", *appointment.DoctorID, err)
		return "", err
	}
	return metrics.OutcomeSlotAppend, nil
}
