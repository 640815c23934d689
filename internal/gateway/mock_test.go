package gateway

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeededMock(successRate float64, delay time.Duration) *MockProvider {
	return NewMockProvider(successRate, delay, rand.New(rand.NewSource(1)), zap.NewNop())
}

func TestMockInitiate(t *testing.T) {
	ctx := context.Background()
	req := &InitiateRequest{
		AmountMinor: 50000,
		Currency:    "INR",
		Reference:   "TXN_1700000000000_AB12CD34",
		PatientName: "Ravi Kumar",
	}

	t.Run("Success Result Shape", func(t *testing.T) {
		provider := newSeededMock(1.0, 0)

		result, err := provider.Initiate(ctx, req)
		require.NoError(t, err)

		assert.False(t, result.RequiresConfirmation, "mock settles immediately")
		assert.True(t, strings.HasPrefix(result.GatewayTransactionID, "MOCK_"))
		assert.Equal(t, int64(50000), result.AmountMinor)
		assert.Equal(t, "INR", result.Currency)
		assert.Equal(t, "completed", result.GatewayResponse["status"])
	})

	t.Run("Decline Reports Insufficient Funds", func(t *testing.T) {
		provider := newSeededMock(0.0000001, 0)

		_, err := provider.Initiate(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("Approximate Success Rate", func(t *testing.T) {
		provider := newSeededMock(0.95, 0)

		successes := 0
		const attempts = 2000
		for i := 0; i < attempts; i++ {
			if _, err := provider.Initiate(ctx, req); err == nil {
				successes++
			}
		}

		rate := float64(successes) / attempts
		assert.InDelta(t, 0.95, rate, 0.03, "should succeed about 95%% of the time")
	})

	t.Run("Cancelled Context During Delay", func(t *testing.T) {
		provider := newSeededMock(1.0, 5*time.Second)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := provider.Initiate(cancelled, req)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Out Of Range Rate Falls Back To Default", func(t *testing.T) {
		provider := NewMockProvider(0, 0, rand.New(rand.NewSource(1)), zap.NewNop())
		assert.Equal(t, 0.95, provider.successRate)

		provider = NewMockProvider(1.5, 0, rand.New(rand.NewSource(1)), zap.NewNop())
		assert.Equal(t, 0.95, provider.successRate)
	})
}

func TestMockConfirm(t *testing.T) {
	provider := newSeededMock(1.0, 0)

	_, err := provider.Confirm(context.Background(), &ConfirmRequest{})
	assert.Error(t, err, "mock has no confirmation step")
}

func TestMockRefund(t *testing.T) {
	provider := newSeededMock(1.0, 0)

	result, err := provider.Refund(context.Background(), &RefundRequest{
		GatewayTransactionID: "MOCK_1700000000000_AB12CD34",
		AmountMinor:          50000,
		Reason:               "Appointment cancelled",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.RefundID, "RFND_"))
	assert.Equal(t, int64(50000), result.AmountMinor)
	assert.Equal(t, "processed", result.Status)
	assert.Equal(t, "Appointment cancelled", result.GatewayResponse["reason"])
}

func TestStripePlaceholder(t *testing.T) {
	provider := NewStripeProvider()
	ctx := context.Background()

	_, err := provider.Initiate(ctx, &InitiateRequest{})
	require.Error(t, err)

	_, confirmErr := provider.Confirm(ctx, &ConfirmRequest{})
	_, refundErr := provider.Refund(ctx, &RefundRequest{})
	assert.True(t, errors.Is(confirmErr, errStripeNotImplemented))
	assert.True(t, errors.Is(refundErr, errStripeNotImplemented))
}
