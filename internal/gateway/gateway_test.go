package gateway

import (
	"testing"

	"hospital-booking/internal/data/entity"
	"hospital-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(50000), MinorUnits(500))
	assert.Equal(t, int64(50050), MinorUnits(500.5))
	assert.Equal(t, int64(1), MinorUnits(0.01))
	assert.Equal(t, int64(0), MinorUnits(0))

	// Round, never truncate
	assert.Equal(t, int64(1999), MinorUnits(19.99))
	assert.Equal(t, int64(5), MinorUnits(0.049999999))
}

func TestMajorUnits(t *testing.T) {
	assert.Equal(t, 500.0, MajorUnits(50000))
	assert.Equal(t, 0.01, MajorUnits(1))
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(utils.GatewayConfig{MockSuccessRate: 1.0}, zap.NewNop())

	t.Run("Known Providers", func(t *testing.T) {
		for _, method := range []entity.PaymentMethod{
			entity.PaymentMethodMock,
			entity.PaymentMethodRazorpay,
			entity.PaymentMethodStripe,
		} {
			provider, err := registry.Provider(method)
			require.NoError(t, err, "provider for %s", method)
			assert.NotNil(t, provider)
		}
	})

	t.Run("Unknown Provider", func(t *testing.T) {
		_, err := registry.Provider(entity.PaymentMethodCash)
		assert.ErrorIs(t, err, ErrUnsupportedProvider)
	})
}
