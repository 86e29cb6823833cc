package cielo

import "context"

type Gateway interface {
	CreateCreditCardPayment(ctx context.Context, orderID string, customer Customer, amount float64, card Card, installments int, capture bool, softDescriptor string) (*SaleResponse, error)
	CreateDebitCardPayment(ctx context.Context, orderID string, customer Customer, amount float64, card Card, returnURL string) (*SaleResponse, error)
	CreatePixPayment(ctx context.Context, orderID string, customer Customer, amount float64, expirationMinutes int) (*SaleResponse, error)
	CreateBoletoPayment(ctx context.Context, orderID string, customer Customer, amount float64, opts BoletoOptions) (*SaleResponse, error)
	Capture(ctx context.Context, paymentID string, amount *float64) (*CaptureResponse, error)
	Void(ctx context.Context, paymentID string, amount *float64) (*CaptureResponse, error)
	Get(ctx context.Context, paymentID string) (*SaleResponse, error)
}

var _ Gateway = (*Client)(nil)
