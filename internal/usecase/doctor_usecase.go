package usecase

import (
	"context"
	"errors"

	"hospital-appointment-service/internal/converter"
	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/domain/entity"
	"hospital-appointment-service/internal/domain/repository"
	"hospital-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
)

type DoctorUsecase interface {
	ListBySpecialization(ctx context.Context, specialization string) ([]dto.DoctorResponse, error)
	ListPending(ctx context.Context) ([]dto.DoctorAccountResponse, error)
	ListApproved(ctx context.Context) ([]dto.DoctorAccountResponse, error)
	Approve(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

// ListBySpecialization returns approved doctors of one specialization. No match is an empty list.
func (u *doctorUsecase) ListBySpecialization(ctx context.Context, specialization string) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindApprovedBySpecialization(u.db.WithContext(ctx), specialization)
	if err != nil {
		u.log.Warnf("Failed to find doctors for specialization %q: %+v", specialization, err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}

func (u *doctorUsecase) ListPending(ctx context.Context) ([]dto.DoctorAccountResponse, error) {
	doctors, err := u.doctorRepo.FindByApproval(u.db.WithContext(ctx), false, false)
	if err != nil {
		u.log.Warnf("Failed to find pending doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToAccountResponses(doctors, false), nil
}

func (u *doctorUsecase) ListApproved(ctx context.Context) ([]dto.DoctorAccountResponse, error) {
	doctors, err := u.doctorRepo.FindByApproval(u.db.WithContext(ctx), true, true)
	if err != nil {
		u.log.Warnf("Failed to find approved doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToAccountResponses(doctors, true), nil
}

// Approve marks a doctor approved. Approving twice is not an error.
func (u *doctorUsecase) Approve(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	var doctor *entity.Doctor

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		doctor, err = u.doctorRepo.FindByID(tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		wasApproved := doctor.Approved
		affected, err := u.doctorRepo.Approve(tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to approve doctor %s: %+v", doctorID, err)
			return err
		}
		if affected == 0 {
			return ErrDoctorNotFound
		}
		doctor.Approved = true

		if !wasApproved {
			if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionDoctorApprove, "doctor", doctorID.String(),
				map[string]bool{"approved": false}, map[string]bool{"approved": true}); err != nil {
				u.log.Warnf("Failed to create audit log: %+v", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Doctor approved: id=%s", doctorID)
	return converter.DoctorToResponse(doctor), nil
}
