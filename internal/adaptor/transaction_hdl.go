package adaptor

import (
	"errors"
	"net/http"

	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/dto/response"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	service usecase.TransactionService
	log     *zap.Logger
}

func NewTransactionHandler(service usecase.TransactionService, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		log:     log.With(zap.String("handler", "transaction")),
	}
}

// ListByDoctor handles GET /api/doctors/{id}/transactions
func (h *TransactionHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	page, err := h.service.ListByDoctor(r.Context(), doctorID, query.Get("status"), req)
	if err != nil {
		h.handleServiceError(w, err, "list doctor transactions")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// ListAll handles GET /api/admin/transactions
func (h *TransactionHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	page, err := h.service.ListAll(r.Context(), query.Get("status"), req)
	if err != nil {
		h.handleServiceError(w, err, "list transactions")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// GetByRef handles GET /api/transactions/{ref}
func (h *TransactionHandler) GetByRef(w http.ResponseWriter, r *http.Request) {
	transactionRef := chi.URLParam(r, "ref")
	if transactionRef == "" {
		utils.ResponseBadRequest(w, "Transaction reference is required", nil)
		return
	}

	txn, err := h.service.GetByRef(r.Context(), transactionRef)
	if err != nil {
		h.handleServiceError(w, err, "get transaction")
		return
	}

	resp := response.TransactionToResponse(txn)
	utils.ResponseSuccess(w, "success", resp)
}

func (h *TransactionHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Strings("errors", validationErr.Messages),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Messages)

	case errors.Is(err, usecase.ErrDoctorNotFound),
		errors.Is(err, usecase.ErrTransactionNotFound):
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
