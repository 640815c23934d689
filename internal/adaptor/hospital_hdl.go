package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/utils"

	"go.uber.org/zap"
)

type HospitalHandler struct {
	service usecase.HospitalService
	log     *zap.Logger
}

func NewHospitalHandler(service usecase.HospitalService, log *zap.Logger) *HospitalHandler {
	return &HospitalHandler{
		service: service,
		log:     log.With(zap.String("handler", "hospital")),
	}
}

// Register handles POST /register
func (h *HospitalHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	info, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.log.Error("register hospital failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseCreated(w, "Hospital registered", info)
}

// Info handles GET /hospital-info
func (h *HospitalHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Info(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrHospitalNotRegistered) {
			utils.ResponseNotFound(w, err.Error())
			return
		}
		h.log.Error("get hospital info failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", info)
}
