package usecase

import (
	"context"

	"hospital-appointment-service/internal/converter"
	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultAuditLogLimit = 100
	MaxAuditLogLimit     = 1000
)

type AuditLogUsecase interface {
	GetRecentAuditLogs(ctx context.Context, limit int) ([]dto.AuditLogResponse, error)
	GetEntityAuditLogs(ctx context.Context, entityName, entityID string) ([]dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// GetRecentAuditLogs returns the newest entries first. Out of range limits fall back to the default.
func (u *auditLogUsecase) GetRecentAuditLogs(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	if limit <= 0 || limit > MaxAuditLogLimit {
		limit = DefaultAuditLogLimit
	}

	logs, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return converter.AuditLogsToResponses(logs), nil
}

func (u *auditLogUsecase) GetEntityAuditLogs(ctx context.Context, entityName, entityID string) ([]dto.AuditLogResponse, error) {
	logs, err := u.auditLogRepo.FindByEntity(u.db.WithContext(ctx), entityName, entityID)
	if err != nil {
		u.log.Warnf("Failed to find audit logs for %s %s: %+v", entityName, entityID, err)
		return nil, err
	}

	return converter.AuditLogsToResponses(logs), nil
}
