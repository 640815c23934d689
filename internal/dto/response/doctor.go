package response

import (
	"time"

	"hospital-booking/internal/data/entity"
)

type DoctorResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Schedule       []string `json:"schedule,omitempty"`
	Fee            float64  `json:"fee"`
	Currency       string   `json:"currency"`
	Active         bool     `json:"active"`
}

func DoctorToResponse(doctor *entity.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:             doctor.ID.String(),
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		Schedule:       doctor.Schedule,
		Fee:            doctor.Fee,
		Currency:       doctor.Currency,
		Active:         doctor.Active,
	}
}

type QueueEntryResponse struct {
	Position       int       `json:"position"`
	PatientName    string    `json:"patient_name"`
	Gender         string    `json:"gender"`
	Reason         string    `json:"reason"`
	Age            int       `json:"age"`
	Location       *string   `json:"location,omitempty"`
	PaymentStatus  string    `json:"payment_status"`
	TransactionRef *string   `json:"transaction_ref,omitempty"`
	JoinedAt       time.Time `json:"joined_at"`
}

type QueuePositionResponse struct {
	PatientName       string `json:"patient_name"`
	Position          int    `json:"position"`
	EstimatedWaitTime string `json:"estimated_wait_time"`
}

func QueueEntryToResponse(entry *entity.QueueEntry, position int) QueueEntryResponse {
	return QueueEntryResponse{
		Position:       position,
		PatientName:    entry.PatientName,
		Gender:         string(entry.Gender),
		Reason:         entry.Reason,
		Age:            entry.Age,
		Location:       entry.Location,
		PaymentStatus:  string(entry.PaymentStatus),
		TransactionRef: entry.TransactionRef,
		JoinedAt:       entry.JoinedAt,
	}
}
