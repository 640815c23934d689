package adaptor

import (
	"hospital-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking     *BookingHandler
	Doctor      *DoctorHandler
	Transaction *TransactionHandler
	Hospital    *HospitalHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:     NewBookingHandler(service.Booking, log),
		Doctor:      NewDoctorHandler(service.Doctor, log),
		Transaction: NewTransactionHandler(service.Transaction, log),
		Hospital:    NewHospitalHandler(service.Hospital, log),
	}
}
