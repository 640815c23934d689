package gateway

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"hospital-booking/pkg/utils"

	"go.uber.org/zap"
)

// MockProvider simulates a synchronous gateway: it settles immediately,
// no confirmation step. Failures are reported as insufficient funds.
type MockProvider struct {
	successRate float64
	delay       time.Duration

	mu  sync.Mutex
	rng *rand.Rand

	log *zap.Logger
}

func NewMockProvider(successRate float64, delay time.Duration, rng *rand.Rand, log *zap.Logger) *MockProvider {
	if successRate <= 0 || successRate > 1 {
		successRate = 0.95
	}
	return &MockProvider{
		successRate: successRate,
		delay:       delay,
		rng:         rng,
		log:         log.With(zap.String("provider", "mock")),
	}
}

func (p *MockProvider) Initiate(ctx context.Context, req *InitiateRequest) (*InitiateResult, error) {
	// Simulated processing delay
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	p.mu.Lock()
	roll := p.rng.Float64()
	p.mu.Unlock()

	if roll >= p.successRate {
		p.log.Warn("Mock payment declined",
			zap.String("reference", req.Reference),
			zap.Int64("amount_minor", req.AmountMinor),
		)
		return nil, fmt.Errorf("mock payment failed: %w", ErrInsufficientFunds)
	}

	gatewayTxnID := utils.GenerateRef("MOCK")

	return &InitiateResult{
		RequiresConfirmation: false,
		GatewayTransactionID: gatewayTxnID,
		AmountMinor:          req.AmountMinor,
		Currency:             req.Currency,
		GatewayResponse: map[string]any{
			"status":    "completed",
			"message":   "Mock payment successful",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"mockData":  true,
		},
	}, nil
}

func (p *MockProvider) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResult, error) {
	return nil, errors.New("mock provider settles on initiate and has no confirmation step")
}

func (p *MockProvider) Refund(ctx context.Context, req *RefundRequest) (*RefundResult, error) {
	refundID := utils.GenerateRef("RFND")

	return &RefundResult{
		RefundID:    refundID,
		AmountMinor: req.AmountMinor,
		Status:      "processed",
		GatewayResponse: map[string]any{
			"refundId":   refundID,
			"reason":     req.Reason,
			"refundedAt": time.Now().UTC().Format(time.RFC3339),
			"mockData":   true,
		},
	}, nil
}
