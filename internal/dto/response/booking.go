package response

import "time"

type AppointmentDetails struct {
	Reason   string    `json:"reason"`
	BookedAt time.Time `json:"booked_at"`
}

type BookingResponse struct {
	TransactionRef     string             `json:"transaction_ref"`
	PatientID          string             `json:"patient_id"`
	DoctorName         string             `json:"doctor_name"`
	Specialization     string             `json:"specialization"`
	QueuePosition      int                `json:"queue_position"`
	EstimatedWaitTime  string             `json:"estimated_wait_time"`
	Amount             float64            `json:"amount"`
	Currency           string             `json:"currency"`
	AppointmentDetails AppointmentDetails `json:"appointment_details"`
}

// OrderResponse is returned by create-order; the client completes
// checkout against the gateway and comes back through verify-payment.
type OrderResponse struct {
	OrderID        string `json:"order_id"`
	AmountMinor    int64  `json:"amount"`
	Currency       string `json:"currency"`
	TransactionRef string `json:"transaction_ref"`
	RazorpayKeyID  string `json:"razorpay_key_id"`
}

type RefundResponse struct {
	TransactionRef string  `json:"transaction_ref"`
	RefundID       string  `json:"refund_id"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
}
