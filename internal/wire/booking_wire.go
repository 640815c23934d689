package wire

import (
	"hospital-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/doctors/{id}/pay - Single-step booking payment
	r.Post("/api/doctors/{id}/pay", bookingHandler.Pay)

	// Two-step gateway checkout
	r.Post("/api/doctors/{id}/create-order", bookingHandler.CreateOrder)
	r.Post("/api/doctors/{id}/verify-payment", bookingHandler.VerifyPayment)

	// POST /api/doctors/{id}/next - Dequeue the front patient
	r.Post("/api/doctors/{id}/next", bookingHandler.Next)

	// POST /api/transactions/{ref}/refund - Refund a completed transaction
	r.Post("/api/transactions/{ref}/refund", bookingHandler.Refund)
}
