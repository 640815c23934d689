package response

import (
	"time"

	"hospital-booking/internal/data/entity"
)

type TransactionResponse struct {
	TransactionRef  string         `json:"transaction_ref"`
	DoctorID        string         `json:"doctor_id"`
	PatientID       string         `json:"patient_id"`
	PatientName     string         `json:"patient_name"`
	Amount          float64        `json:"amount"`
	Currency        string         `json:"currency"`
	PaymentMethod   string         `json:"payment_method"`
	Status          string         `json:"status"`
	QueuePosition   int            `json:"queue_position"`
	GatewayResponse map[string]any `json:"gateway_response,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func TransactionToResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionRef:  txn.TransactionRef,
		DoctorID:        txn.DoctorID.String(),
		PatientID:       txn.PatientID.String(),
		PatientName:     txn.PatientName,
		Amount:          txn.Amount,
		Currency:        txn.Currency,
		PaymentMethod:   string(txn.PaymentMethod),
		Status:          string(txn.Status),
		QueuePosition:   txn.QueuePosition,
		GatewayResponse: txn.GatewayResponse,
		CreatedAt:       txn.CreatedAt,
		UpdatedAt:       txn.UpdatedAt,
	}
}
