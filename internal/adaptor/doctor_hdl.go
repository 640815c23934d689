package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DoctorHandler struct {
	service usecase.DoctorService
	log     *zap.Logger
}

func NewDoctorHandler(service usecase.DoctorService, log *zap.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		log:     log.With(zap.String("handler", "doctor")),
	}
}

// CreateDoctor handles POST /api/doctors
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	doctor, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create doctor")
		return
	}

	utils.ResponseCreated(w, "Doctor registered", doctor)
}

// ListDoctors handles GET /api/doctors
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListActive(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list doctors")
		return
	}

	utils.ResponseSuccess(w, "success", doctors)
}

// GetQueue handles GET /api/doctors/{id}/queue
func (h *DoctorHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	queue, err := h.service.GetQueue(r.Context(), doctorID)
	if err != nil {
		h.handleServiceError(w, err, "get queue")
		return
	}

	utils.ResponseSuccess(w, "success", queue)
}

// QueuePosition handles GET /api/doctors/{id}/queue/position
func (h *DoctorHandler) QueuePosition(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	patientName := r.URL.Query().Get("patient_name")

	position, err := h.service.QueuePosition(r.Context(), doctorID, patientName)
	if err != nil {
		h.handleServiceError(w, err, "get queue position")
		return
	}

	utils.ResponseSuccess(w, "success", position)
}

// ToggleActive handles POST /api/admin/doctors/{id}/toggle
func (h *DoctorHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	doctor, err := h.service.ToggleActive(r.Context(), doctorID)
	if err != nil {
		h.handleServiceError(w, err, "toggle doctor")
		return
	}

	utils.ResponseSuccess(w, "Doctor availability updated", doctor)
}

// UpdateFee handles PUT /api/admin/doctors/{id}/fee
func (h *DoctorHandler) UpdateFee(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	var req request.UpdateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	doctor, err := h.service.UpdateFee(r.Context(), doctorID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update fee")
		return
	}

	utils.ResponseSuccess(w, "Doctor fee updated", doctor)
}

func (h *DoctorHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Strings("errors", validationErr.Messages),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Messages)

	case errors.Is(err, usecase.ErrDoctorNotFound),
		errors.Is(err, usecase.ErrPatientNotInQueue):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
