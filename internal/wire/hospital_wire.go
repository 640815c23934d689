package wire

import (
	"hospital-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHospital(r chi.Router, hospitalHandler *adaptor.HospitalHandler) {
	// POST /register - Register or replace the hospital profile
	r.Post("/register", hospitalHandler.Register)

	// GET /hospital-info - Public hospital profile
	r.Get("/hospital-info", hospitalHandler.Info)
}
