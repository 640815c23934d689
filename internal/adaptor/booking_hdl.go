package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/gateway"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Pay handles POST /api/doctors/{id}/pay
func (h *BookingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	var req request.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Pay(r.Context(), doctorID, &req)
	if err != nil {
		h.handleServiceError(w, err, "pay")
		return
	}

	utils.ResponseCreated(w, "Payment successful, appointment booked", booking)
}

// CreateOrder handles POST /api/doctors/{id}/create-order
func (h *BookingHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), doctorID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Order created", order)
}

// VerifyPayment handles POST /api/doctors/{id}/verify-payment
func (h *BookingHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.VerifyPayment(r.Context(), doctorID, &req)
	if err != nil {
		h.handleServiceError(w, err, "verify payment")
		return
	}

	utils.ResponseCreated(w, "Payment verified, appointment booked", booking)
}

// Refund handles POST /api/transactions/{ref}/refund
func (h *BookingHandler) Refund(w http.ResponseWriter, r *http.Request) {
	transactionRef := chi.URLParam(r, "ref")
	if transactionRef == "" {
		utils.ResponseBadRequest(w, "Transaction reference is required", nil)
		return
	}

	var req request.RefundRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	refund, err := h.service.Refund(r.Context(), transactionRef, req.Reason)
	if err != nil {
		h.handleServiceError(w, err, "refund")
		return
	}

	utils.ResponseSuccess(w, "Transaction refunded", refund)
}

// Next handles POST /api/doctors/{id}/next
func (h *BookingHandler) Next(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	entry, err := h.service.Next(r.Context(), doctorID)
	if err != nil {
		h.handleServiceError(w, err, "call next patient")
		return
	}

	if entry == nil {
		utils.ResponseSuccess(w, "Queue is empty", nil)
		return
	}

	utils.ResponseSuccess(w, "Patient called", entry)
}

// handleServiceError maps booking failures to HTTP responses
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr *usecase.ValidationError
	var paymentErr *usecase.PaymentError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Strings("errors", validationErr.Messages),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Messages)

	case errors.As(err, &paymentErr):
		h.log.Warn(operation+" payment failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Payment failed", map[string]any{
			"error":           paymentErr.Err.Error(),
			"transaction_ref": paymentErr.TransactionRef,
		})

	case errors.Is(err, usecase.ErrDoctorNotFound),
		errors.Is(err, usecase.ErrTransactionNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrDoctorUnavailable),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, gateway.ErrUnsupportedProvider),
		errors.Is(err, gateway.ErrRefundFailed):
		h.log.Warn(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
