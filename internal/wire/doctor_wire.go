package wire

import (
	"hospital-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDoctor(r chi.Router, doctorHandler *adaptor.DoctorHandler) {
	// POST /api/doctors - Register a new doctor
	r.Post("/api/doctors", doctorHandler.CreateDoctor)

	// GET /api/doctors - List active doctors
	r.Get("/api/doctors", doctorHandler.ListDoctors)

	// GET /api/doctors/{id}/queue - Current walk-in queue with positions
	r.Get("/api/doctors/{id}/queue", doctorHandler.GetQueue)

	// GET /api/doctors/{id}/queue/position?patient_name=... - Where a
	// patient stands in the line
	r.Get("/api/doctors/{id}/queue/position", doctorHandler.QueuePosition)
}
