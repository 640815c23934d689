package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// RazorpayProvider is the two-step signed-callback gateway: Initiate
// creates an order, the client completes checkout against Razorpay, and
// Confirm verifies the signed callback before the booking is persisted.
type RazorpayProvider struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	log       *zap.Logger
}

func NewRazorpayProvider(keyID, keySecret string, log *zap.Logger) *RazorpayProvider {
	return &RazorpayProvider{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
		log:       log.With(zap.String("provider", "razorpay")),
	}
}

// verifySignature recomputes HMAC-SHA256 over "orderId|paymentId" with the
// shared key secret, hex digest. The construction is a fixed wire contract
// with existing external callers.
func verifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// do runs one blocking SDK call under the caller's deadline.
func (p *RazorpayProvider) do(ctx context.Context, call func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	type result struct {
		body map[string]interface{}
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		body, err := call()
		ch <- result{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.body, res.err
	}
}

func (p *RazorpayProvider) Initiate(ctx context.Context, req *InitiateRequest) (*InitiateResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	orderData := map[string]interface{}{
		"amount":   req.AmountMinor,
		"currency": currency,
		"receipt":  req.Reference,
		"notes": map[string]interface{}{
			"patientName":     req.PatientName,
			"doctorId":        req.DoctorID,
			"hospitalBooking": true,
		},
	}

	order, err := p.do(ctx, func() (map[string]interface{}, error) {
		return p.client.Order.Create(orderData, nil)
	})
	if err != nil {
		p.log.Error("Failed to create razorpay order",
			zap.Error(err),
			zap.String("reference", req.Reference),
		)
		return nil, fmt.Errorf("create razorpay order for %s: %w", req.Reference, err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order response for %s has no id", req.Reference)
	}

	p.log.Info("Razorpay order created",
		zap.String("order_id", orderID),
		zap.String("reference", req.Reference),
		zap.Int64("amount_minor", req.AmountMinor),
	)

	return &InitiateResult{
		RequiresConfirmation: true,
		OrderID:              orderID,
		AmountMinor:          req.AmountMinor,
		Currency:             currency,
		GatewayResponse:      order,
	}, nil
}

func (p *RazorpayProvider) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResult, error) {
	if !verifySignature(req.OrderID, req.PaymentID, req.Signature, p.keySecret) {
		p.log.Warn("Razorpay signature mismatch",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, ErrSignatureMismatch
	}

	payment, err := p.do(ctx, func() (map[string]interface{}, error) {
		return p.client.Payment.Fetch(req.PaymentID, nil, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch razorpay payment %s: %w", req.PaymentID, err)
	}

	status, _ := payment["status"].(string)
	if status != "captured" && status != "authorized" {
		return nil, fmt.Errorf("%w: status %s", ErrPaymentNotSuccessful, status)
	}

	amountMinor := int64(0)
	if amount, ok := payment["amount"].(float64); ok {
		amountMinor = int64(amount)
	}
	currency, _ := payment["currency"].(string)

	return &ConfirmResult{
		GatewayTransactionID: req.PaymentID,
		AmountMinor:          amountMinor,
		Currency:             currency,
		GatewayResponse: map[string]any{
			"status":            "completed",
			"razorpayPaymentId": req.PaymentID,
			"razorpayOrderId":   req.OrderID,
			"paymentMethod":     payment["method"],
			"email":             payment["email"],
			"contact":           payment["contact"],
			"timestamp":         time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (p *RazorpayProvider) Refund(ctx context.Context, req *RefundRequest) (*RefundResult, error) {
	refundData := map[string]interface{}{
		"notes": map[string]interface{}{
			"reason":     req.Reason,
			"refundedAt": time.Now().UTC().Format(time.RFC3339),
		},
	}

	refund, err := p.do(ctx, func() (map[string]interface{}, error) {
		return p.client.Payment.Refund(req.GatewayTransactionID, int(req.AmountMinor), refundData, nil)
	})
	if err != nil {
		p.log.Error("Razorpay refund failed",
			zap.Error(err),
			zap.String("payment_id", req.GatewayTransactionID),
		)
		return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	refundID, _ := refund["id"].(string)
	status, _ := refund["status"].(string)

	return &RefundResult{
		RefundID:        refundID,
		AmountMinor:     req.AmountMinor,
		Status:          status,
		GatewayResponse: refund,
	}, nil
}
