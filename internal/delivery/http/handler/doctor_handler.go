package handler

import (
	"errors"
	"net/http"

	"hospital-appointment-service/internal/usecase"
	"hospital-appointment-service/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
	}
}

func (h *DoctorHandler) GetDoctorsBySpecialization(w http.ResponseWriter, r *http.Request) {
	specialization := mux.Vars(r)["specialization"]

	doctors, err := h.doctorUsecase.ListBySpecialization(r.Context(), specialization)
	if err != nil {
		response.InternalServerError(w, err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetPendingDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListPending(r.Context())
	if err != nil {
		response.InternalServerError(w, err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Pending doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetApprovedDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListApproved(r.Context())
	if err != nil {
		response.InternalServerError(w, err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Approved doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) ApproveDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorUsecase.Approve(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Doctor approved successfully", doctor)
}
