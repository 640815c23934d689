package entity

import (
	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// CanTransitionTo enforces the ledger state machine:
// pending -> completed | failed, completed -> refunded.
// failed and refunded are terminal.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case TransactionPending:
		return next == TransactionCompleted || next == TransactionFailed
	case TransactionCompleted:
		return next == TransactionRefunded
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMethodMock     PaymentMethod = "mock"
	PaymentMethodStripe   PaymentMethod = "stripe"
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCash     PaymentMethod = "cash"
)

// GatewayTransactionID returns the provider-side identifier recorded at
// settlement. Refunds are issued against this, not the local reference.
func (t *Transaction) GatewayTransactionID() string {
	for _, key := range []string{"razorpayPaymentId", "gatewayTransactionId"} {
		if v, ok := t.GatewayResponse[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

type Transaction struct {
	Base
	DoctorID        uuid.UUID         `db:"doctor_id"`
	PatientID       uuid.UUID         `db:"patient_id"`
	PatientName     string            `db:"patient_name"`
	Amount          float64           `db:"amount"`
	Currency        string            `db:"currency"`
	PaymentMethod   PaymentMethod     `db:"payment_method"`
	Status          TransactionStatus `db:"status"`
	TransactionRef  string            `db:"transaction_ref"`
	GatewayResponse map[string]any    `db:"gateway_response"`
	QueuePosition   int               `db:"queue_position"`
}
