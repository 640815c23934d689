package request

// PayRequest books the single-step flow: the payment settles during the
// request (mock provider).
type PayRequest struct {
	PatientName   string  `json:"patient_name" validate:"required,min=2,max=50"`
	Age           int     `json:"age" validate:"required,min=1,max=120"`
	Gender        string  `json:"gender" validate:"required,oneof=male female other"`
	Reason        string  `json:"reason" validate:"required,min=5,max=200"`
	Location      *string `json:"location,omitempty" validate:"omitempty,max=100"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=mock stripe razorpay"`
}

// CreateOrderRequest is step 1 of the two-step flow. Nothing is persisted
// server-side: the same patient fields must be resubmitted at verify.
type CreateOrderRequest struct {
	PatientName string  `json:"patient_name" validate:"required,min=2,max=50"`
	Age         int     `json:"age" validate:"required,min=1,max=120"`
	Gender      string  `json:"gender" validate:"required,oneof=male female other"`
	Reason      string  `json:"reason" validate:"required,min=5,max=200"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

// VerifyPaymentRequest is step 2: the echoed patient data plus the signed
// provider callback fields.
type VerifyPaymentRequest struct {
	PatientName string  `json:"patient_name" validate:"required,min=2,max=50"`
	Age         int     `json:"age" validate:"required,min=1,max=120"`
	Gender      string  `json:"gender" validate:"required,oneof=male female other"`
	Reason      string  `json:"reason" validate:"required,min=5,max=200"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=100"`

	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	TransactionRef    string `json:"transaction_ref" validate:"required"`
}

type RefundRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=200"`
}
