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

type SlotUsecase interface {
	ListFreeSlots(ctx context.Context, doctorID uuid.UUID) ([]dto.SlotResponse, error)
	AddSlots(ctx context.Context, doctorID uuid.UUID, req *dto.CreateSlotsRequest) ([]dto.SlotResponse, error)
}

type slotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	slotRepo     repository.SlotRepository
	auditService service.AuditService
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	slotRepo repository.SlotRepository,
	auditService service.AuditService,
) SlotUsecase {
	return &slotUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		slotRepo:     slotRepo,
		auditService: auditService,
	}
}

// ListFreeSlots returns the doctor's unbooked slots in ledger order
func (u *slotUsecase) ListFreeSlots(ctx context.Context, doctorID uuid.UUID) ([]dto.SlotResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.SlotsToResponses(doctor.FreeSlots()), nil
}

// AddSlots appends free slots to the end of a doctor's ledger
func (u *slotUsecase) AddSlots(ctx context.Context, doctorID uuid.UUID, req *dto.CreateSlotsRequest) ([]dto.SlotResponse, error) {
	slots := make([]entity.Slot, len(req.Slots))
	for i, input := range req.Slots {
		slots[i] = entity.Slot{
			DoctorID: doctorID,
			Date:     input.Date,
			Time:     input.Time,
		}
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		if err := u.slotRepo.CreateBatch(tx, slots); err != nil {
			u.log.Warnf("Failed to create slots for doctor %s: %+v", doctorID, err)
			return err
		}

		if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionSlotCreate, "doctor", doctorID.String(), req.Slots); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.SlotsToResponses(slots), nil
}
