package handler

import (
	"net/http"
	"strconv"

	"hospital-appointment-service/internal/usecase"
	"hospital-appointment-service/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// GetAuditLogs lists recent entries, or the history of one entity when
// both entity and entityId query parameters are given.
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	entityName, entityID := query.Get("entity"), query.Get("entityId")
	if entityName != "" && entityID != "" {
		auditLogs, err := h.auditLogUsecase.GetEntityAuditLogs(r.Context(), entityName, entityID)
		if err != nil {
			response.InternalServerError(w, err.Error())
			return
		}
		response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid limit")
			return
		}
		limit = parsed
	}

	auditLogs, err := h.auditLogUsecase.GetRecentAuditLogs(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}
