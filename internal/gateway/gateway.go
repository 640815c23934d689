package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"hospital-booking/internal/data/entity"
	"hospital-booking/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrUnsupportedProvider  = errors.New("payment provider not supported")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrSignatureMismatch    = errors.New("invalid payment signature")
	ErrPaymentNotSuccessful = errors.New("payment not successful")
	ErrRefundFailed         = errors.New("refund failed")
)

// All amounts cross the gateway boundary in integer minor units
// (paise/cents) to avoid floating-point drift.

func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func MajorUnits(minor int64) float64 {
	return float64(minor) / 100
}

type InitiateRequest struct {
	AmountMinor int64
	Currency    string
	Reference   string
	PatientName string
	DoctorID    string
}

type InitiateResult struct {
	// RequiresConfirmation marks two-step providers: OrderID is set and
	// the caller must come back through Confirm. Immediate providers set
	// GatewayTransactionID instead.
	RequiresConfirmation bool
	OrderID              string
	GatewayTransactionID string
	AmountMinor          int64
	Currency             string
	GatewayResponse      map[string]any
}

type ConfirmRequest struct {
	OrderID     string
	PaymentID   string
	Signature   string
	AmountMinor int64
	Currency    string
}

type ConfirmResult struct {
	GatewayTransactionID string
	AmountMinor          int64
	Currency             string
	GatewayResponse      map[string]any
}

type RefundRequest struct {
	GatewayTransactionID string
	AmountMinor          int64
	Reason               string
}

type RefundResult struct {
	RefundID        string
	AmountMinor     int64
	Status          string
	GatewayResponse map[string]any
}

// Provider is one payment gateway. The set of implementations is closed:
// mock, razorpay, and the stripe placeholder.
type Provider interface {
	Initiate(ctx context.Context, req *InitiateRequest) (*InitiateResult, error)
	Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResult, error)
	Refund(ctx context.Context, req *RefundRequest) (*RefundResult, error)
}

type Registry struct {
	providers map[entity.PaymentMethod]Provider
}

func NewRegistry(config utils.GatewayConfig, log *zap.Logger) *Registry {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Registry{
		providers: map[entity.PaymentMethod]Provider{
			entity.PaymentMethodMock:     NewMockProvider(config.MockSuccessRate, config.MockDelay, rng, log),
			entity.PaymentMethodRazorpay: NewRazorpayProvider(config.RazorpayKeyID, config.RazorpayKeySecret, log),
			entity.PaymentMethodStripe:   NewStripeProvider(),
		},
	}
}

// Provider is a pure lookup by method name.
func (r *Registry) Provider(method entity.PaymentMethod) (Provider, error) {
	provider, ok := r.providers[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, method)
	}
	return provider, nil
}
