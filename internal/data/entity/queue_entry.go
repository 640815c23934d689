package entity

import (
	"time"

	"github.com/google/uuid"
)

type QueuePaymentStatus string

const (
	QueuePaymentPending QueuePaymentStatus = "pending"
	QueuePaymentPaid    QueuePaymentStatus = "paid"
)

// QueueEntry is a patient's place in a doctor's walk-in line. Position is
// not stored: it is always recomputed as current index + 1, so dequeues
// shift everyone up.
type QueueEntry struct {
	ID             uuid.UUID          `db:"id"`
	DoctorID       uuid.UUID          `db:"doctor_id"`
	PatientID      uuid.UUID          `db:"patient_id"`
	PatientName    string             `db:"patient_name"`
	Gender         Gender             `db:"gender"`
	Reason         string             `db:"reason"`
	Age            int                `db:"age"`
	Location       *string            `db:"location"`
	PaymentStatus  QueuePaymentStatus `db:"payment_status"`
	TransactionRef *string            `db:"transaction_ref"`
	JoinedAt       time.Time          `db:"joined_at"`
}
