package wire

import (
	"hospital-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, doctorHandler *adaptor.DoctorHandler, transactionHandler *adaptor.TransactionHandler) {
	// GET /api/doctors/{id}/transactions - Per-doctor transaction history
	r.Get("/api/doctors/{id}/transactions", transactionHandler.ListByDoctor)

	// GET /api/transactions/{ref} - Look up a transaction by reference
	r.Get("/api/transactions/{ref}", transactionHandler.GetByRef)

	r.Route("/api/admin", func(r chi.Router) {
		// GET /api/admin/transactions - Full ledger with status filter
		r.Get("/transactions", transactionHandler.ListAll)

		// Doctor management
		r.Post("/doctors/{id}/toggle", doctorHandler.ToggleActive) // POST /api/admin/doctors/{id}/toggle
		r.Put("/doctors/{id}/fee", doctorHandler.UpdateFee)        // PUT /api/admin/doctors/{id}/fee
	})
}
