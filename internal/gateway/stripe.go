package gateway

import (
	"context"
	"errors"
)

var errStripeNotImplemented = errors.New("stripe integration not implemented yet")

// StripeProvider is a placeholder keeping the provider set closed until
// the integration lands.
type StripeProvider struct{}

func NewStripeProvider() *StripeProvider {
	return &StripeProvider{}
}

func (p *StripeProvider) Initiate(ctx context.Context, req *InitiateRequest) (*InitiateResult, error) {
	return nil, errStripeNotImplemented
}

func (p *StripeProvider) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResult, error) {
	return nil, errStripeNotImplemented
}

func (p *StripeProvider) Refund(ctx context.Context, req *RefundRequest) (*RefundResult, error) {
	return nil, errStripeNotImplemented
}
