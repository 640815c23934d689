package usecase

import (
	"context"
	"strings"
	"testing"

	"hospital-booking/internal/data/entity"
	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayRequest() *request.PayRequest {
	return &request.PayRequest{
		PatientName: "Ravi Kumar",
		Age:         34,
		Gender:      "male",
		Reason:      "Persistent headache",
	}
}

func TestPay(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful Payment Books Appointment", func(t *testing.T) {
		env := newTestEnv(1.0)
		doctor := env.seedDoctor(500, true)

		booking, err := env.svc.Pay(ctx, doctor.ID.String(), validPayRequest())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(booking.TransactionRef, "TXN_"), "reference should carry the TXN prefix")
		assert.Equal(t, doctor.Name, booking.DoctorName)
		assert.Equal(t, 1, booking.QueuePosition)
		assert.Equal(t, "0 minutes", booking.EstimatedWaitTime)
		assert.Equal(t, 500.0, booking.Amount)
		assert.Equal(t, "INR", booking.Currency)

		// Everything committed together
		assert.Len(t, env.store.patients, 1, "exactly one patient record")
		assert.Len(t, env.store.queues[doctor.ID], 1, "exactly one queue entry")

		txn := env.store.txns[booking.TransactionRef]
		require.NotNil(t, txn, "transaction persisted under its reference")
		assert.Equal(t, entity.TransactionCompleted, txn.Status)
		assert.Equal(t, doctor.ID, txn.DoctorID)
		assert.NotEmpty(t, txn.GatewayTransactionID(), "gateway transaction id recorded for refunds")

		entry := env.store.queues[doctor.ID][0]
		assert.Equal(t, entity.QueuePaymentPaid, entry.PaymentStatus)
		require.NotNil(t, entry.TransactionRef)
		assert.Equal(t, booking.TransactionRef, *entry.TransactionRef)
	})

	t.Run("Second Booking Gets Position Two", func(t *testing.T) {
		env := newTestEnv(1.0)
		doctor := env.seedDoctor(500, true)

		_, err := env.svc.Pay(ctx, doctor.ID.String(), validPayRequest())
		require.NoError(t, err)

		second := validPayRequest()
		second.PatientName = "Meena Iyer"
		second.Gender = "female"
		booking, err := env.svc.Pay(ctx, doctor.ID.String(), second)
		require.NoError(t, err)

		assert.Equal(t, 2, booking.QueuePosition)
		assert.Equal(t, "15 minutes", booking.EstimatedWaitTime)
	})

	t.Run("Gateway Decline Leaves Nothing But Failed Ledger Entry", func(t *testing.T) {
		env := newTestEnv(0.0000001)
		doctor := env.seedDoctor(500, true)

		booking, err := env.svc.Pay(ctx, doctor.ID.String(), validPayRequest())
		require.Error(t, err)
		assert.Nil(t, booking)

		var paymentErr *PaymentError
		require.ErrorAs(t, err, &paymentErr)
		assert.ErrorIs(t, err, gateway.ErrInsufficientFunds)
		assert.NotEmpty(t, paymentErr.TransactionRef)

		// The booking rolled back: no patient, no queue entry
		assert.Empty(t, env.store.patients)
		assert.Empty(t, env.store.queues[doctor.ID])

		// Only the failed attempt survives, outside the atomic unit
		require.Len(t, env.store.txns, 1)
		txn := env.store.txns[paymentErr.TransactionRef]
		require.NotNil(t, txn)
		assert.Equal(t, entity.TransactionFailed, txn.Status)
	})

	t.Run("Inactive Doctor Rejected", func(t *testing.T) {
		env := newTestEnv(1.0)
		doctor := env.seedDoctor(500, false)

		_, err := env.svc.Pay(ctx, doctor.ID.String(), validPayRequest())
		assert.ErrorIs(t, err, ErrDoctorUnavailable)
		assert.Empty(t, env.store.txns)
	})

	t.Run("Unknown Doctor", func(t *testing.T) {
		env := newTestEnv(1.0)

		_, err := env.svc.Pay(ctx, "3f1f8a86-7d71-4c2e-9d3a-0b9c6dd0a111", validPayRequest())
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("Malformed Doctor ID", func(t *testing.T) {
		env := newTestEnv(1.0)

		_, err := env.svc.Pay(ctx, "not-a-uuid", validPayRequest())
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("Invalid Patient Data Collects All Messages", func(t *testing.T) {
		env := newTestEnv(1.0)
		doctor := env.seedDoctor(500, true)

		req := &request.PayRequest{
			PatientName: "X",
			Age:         0,
			Gender:      "unknown",
			Reason:      "hi",
		}
		_, err := env.svc.Pay(ctx, doctor.ID.String(), req)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Messages, 4)
		assert.Empty(t, env.store.txns, "nothing persisted on validation failure")
	})

	t.Run("Unsupported Payment Method", func(t *testing.T) {
		env := newTestEnv(1.0)
		doctor := env.seedDoctor(500, true)

		req := validPayRequest()
		req.PaymentMethod = "cash"
		_, err := env.svc.Pay(ctx, doctor.ID.String(), req)
		assert.ErrorIs(t, err, gateway.ErrUnsupportedProvider)
	})
}

func TestRefund(t *testing.T) {
	ctx := context.Background()

	setupCompleted := func(env *testEnv) (*entity.Doctor, string) {
		doctor := env.seedDoctor(500, true)
		booking, err := env.svc.Pay(ctx, doctor.ID.String(), validPayRequest())
		if err != nil {
			panic(err)
		}
		return doctor, booking.TransactionRef
	}

	t.Run("Refund Completed Transaction", func(t *testing.T) {
		env := newTestEnv(1.0)
		_, ref := setupCompleted(env)

		refund, err := env.svc.Refund(ctx, ref, "Patient cancelled")
		require.NoError(t, err)

		assert.Equal(t, ref, refund.TransactionRef)
		assert.True(t, strings.HasPrefix(refund.RefundID, "RFND_"))
		assert.Equal(t, 500.0, refund.Amount)
		assert.Equal(t, "processed", refund.Status)

		txn := env.store.txns[ref]
		require.NotNil(t, txn)
		assert.Equal(t, entity.TransactionRefunded, txn.Status)
		assert.Equal(t, refund.RefundID, txn.GatewayResponse["refundId"])
	})

	t.Run("Refund Is Not Repeatable", func(t *testing.T) {
		env := newTestEnv(1.0)
		_, ref := setupCompleted(env)

		_, err := env.svc.Refund(ctx, ref, "")
		require.NoError(t, err)

		_, err = env.svc.Refund(ctx, ref, "")
		assert.ErrorIs(t, err, gateway.ErrRefundFailed)
	})

	t.Run("Refund Unknown Reference", func(t *testing.T) {
		env := newTestEnv(1.0)

		_, err := env.svc.Refund(ctx, "TXN_missing", "")
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("Refund Failed Transaction Rejected", func(t *testing.T) {
		env := newTestEnv(0.0000001)
		doctor := env.seedDoctor(500, true)

		_, err := env.svc.Pay(ctx, doctor.ID.String(), validPayRequest())
		require.Error(t, err)

		var paymentErr *PaymentError
		require.ErrorAs(t, err, &paymentErr)

		_, err = env.svc.Refund(ctx, paymentErr.TransactionRef, "")
		assert.ErrorIs(t, err, gateway.ErrRefundFailed)
	})
}

func TestNext(t *testing.T) {
	ctx := context.Background()

	t.Run("Dequeues In Arrival Order", func(t *testing.T) {
		env := newTestEnv(1.0)
		doctor := env.seedDoctor(500, true)

		first := validPayRequest()
		_, err := env.svc.Pay(ctx, doctor.ID.String(), first)
		require.NoError(t, err)

		second := validPayRequest()
		second.PatientName = "Meena Iyer"
		second.Gender = "female"
		_, err = env.svc.Pay(ctx, doctor.ID.String(), second)
		require.NoError(t, err)

		called, err := env.svc.Next(ctx, doctor.ID.String())
		require.NoError(t, err)
		require.NotNil(t, called)
		assert.Equal(t, "Ravi Kumar", called.PatientName)

		assert.Len(t, env.store.queues[doctor.ID], 1)
		assert.Equal(t, "Meena Iyer", env.store.queues[doctor.ID][0].PatientName)
	})

	t.Run("Empty Queue Returns Nothing", func(t *testing.T) {
		env := newTestEnv(1.0)
		doctor := env.seedDoctor(500, true)

		called, err := env.svc.Next(ctx, doctor.ID.String())
		require.NoError(t, err)
		assert.Nil(t, called)
	})

	t.Run("Unknown Doctor", func(t *testing.T) {
		env := newTestEnv(1.0)

		_, err := env.svc.Next(ctx, "3f1f8a86-7d71-4c2e-9d3a-0b9c6dd0a111")
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}
