package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorUnavailable     = errors.New("doctor is currently unavailable")
	ErrValidationFailed      = errors.New("validation failed")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInvalidTransition     = errors.New("invalid transaction status transition")
	ErrAmountMismatch        = errors.New("gateway amount does not match transaction amount")
	ErrHospitalNotRegistered = errors.New("hospital profile not registered")
	ErrPatientNotInQueue     = errors.New("patient not in queue")
)

// ValidationError carries one message per violated rule; the rules are
// checked in full rather than failing on the first violation.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// PaymentError keeps the transaction reference attached to a gateway
// failure so clients can audit the attempt even though the booking was
// rolled back.
type PaymentError struct {
	TransactionRef string
	Err            error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment processing failed (transaction %s): %v", e.TransactionRef, e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
