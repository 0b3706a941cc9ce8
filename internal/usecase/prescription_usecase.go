package usecase

import (
	"context"

	"hospital-appointment-service/internal/converter"
	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/domain/entity"
	"hospital-appointment-service/internal/domain/repository"
	"hospital-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PrescriptionUsecase interface {
	WritePrescription(ctx context.Context, req *dto.WritePrescriptionRequest) (*dto.PrescriptionResponse, bool, error)
	GetPatientPrescriptions(ctx context.Context, patientID uuid.UUID) ([]dto.PrescriptionResponse, error)
	GetPatientBills(ctx context.Context, patientID uuid.UUID) ([]dto.PatientBillResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		auditService:     auditService,
	}
}

// WritePrescription records the doctor's prescription for an appointment. There is
// at most one per appointment: writing again replaces medicines, tests and notes and
// keeps any bill. The bool reports whether a new prescription was created.
func (u *prescriptionUsecase) WritePrescription(ctx context.Context, req *dto.WritePrescriptionRequest) (*dto.PrescriptionResponse, bool, error) {
	var (
		prescription *entity.Prescription
		created      bool
	)

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(tx, req.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		prescription, err = u.prescriptionRepo.FindByAppointmentID(tx, req.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find prescription for appointment %s: %+v", req.AppointmentID, err)
			return err
		}

		var oldValue interface{}
		if prescription == nil {
			created = true
			prescription = &entity.Prescription{
				AppointmentID: appointment.ID,
				DoctorID:      appointment.DoctorID,
				PatientID:     appointment.PatientID,
			}
		} else {
			oldValue = converter.PrescriptionToSummary(prescription)
		}

		prescription.Medicines = req.Medicines
		prescription.Tests = req.Tests
		prescription.Notes = req.Notes
		if prescription.Medicines == nil {
			prescription.Medicines = []string{}
		}
		if prescription.Tests == nil {
			prescription.Tests = []string{}
		}

		if created {
			err = u.prescriptionRepo.Create(tx, prescription)
		} else {
			err = u.prescriptionRepo.Update(tx, prescription)
		}
		if err != nil {
			u.log.Warnf("Failed to save prescription for appointment %s: %+v", req.AppointmentID, err)
			return err
		}

		if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionPrescriptionWrite, "prescription", prescription.ID.String(),
			oldValue, converter.PrescriptionToSummary(prescription)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	u.log.Infof("Prescription written: id=%s, appointment=%s, created=%t", prescription.ID, req.AppointmentID, created)
	return converter.PrescriptionToResponse(prescription), created, nil
}

func (u *prescriptionUsecase) GetPatientPrescriptions(ctx context.Context, patientID uuid.UUID) ([]dto.PrescriptionResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for patient %s: %+v", patientID, err)
		return nil, err
	}

	return converter.PrescriptionsToResponses(prescriptions), nil
}

// GetPatientBills returns only prescriptions that went through checkout
func (u *prescriptionUsecase) GetPatientBills(ctx context.Context, patientID uuid.UUID) ([]dto.PatientBillResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindBilledByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find bills for patient %s: %+v", patientID, err)
		return nil, err
	}

	return converter.PrescriptionsToBills(prescriptions), nil
}
