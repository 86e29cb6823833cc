package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/henriquelv/rottava-agro-pet-sub001/internal/domain"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/infra/cielo"
)

type MockGateway struct {
	mock.Mock
}

type MockOrderRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockGateway) CreateCreditCardPayment(ctx context.Context, orderID string, customer cielo.Customer, amount float64, card cielo.Card, installments int, capture bool, softDescriptor string) (*cielo.SaleResponse, error) {
	args := m.Called(ctx, orderID, customer, amount, card, installments, capture, softDescriptor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cielo.SaleResponse), args.Error(1)
}

func (m *MockGateway) CreateDebitCardPayment(ctx context.Context, orderID string, customer cielo.Customer, amount float64, card cielo.Card, returnURL string) (*cielo.SaleResponse, error) {
	args := m.Called(ctx, orderID, customer, amount, card, returnURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cielo.SaleResponse), args.Error(1)
}

func (m *MockGateway) CreatePixPayment(ctx context.Context, orderID string, customer cielo.Customer, amount float64, expirationMinutes int) (*cielo.SaleResponse, error) {
	args := m.Called(ctx, orderID, customer, amount, expirationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cielo.SaleResponse), args.Error(1)
}

func (m *MockGateway) CreateBoletoPayment(ctx context.Context, orderID string, customer cielo.Customer, amount float64, opts cielo.BoletoOptions) (*cielo.SaleResponse, error) {
	args := m.Called(ctx, orderID, customer, amount, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cielo.SaleResponse), args.Error(1)
}

func (m *MockGateway) Capture(ctx context.Context, paymentID string, amount *float64) (*cielo.CaptureResponse, error) {
	args := m.Called(ctx, paymentID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cielo.CaptureResponse), args.Error(1)
}

func (m *MockGateway) Void(ctx context.Context, paymentID string, amount *float64) (*cielo.CaptureResponse, error) {
	args := m.Called(ctx, paymentID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cielo.CaptureResponse), args.Error(1)
}

func (m *MockGateway) Get(ctx context.Context, paymentID string) (*cielo.SaleResponse, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cielo.SaleResponse), args.Error(1)
}

func (m *MockOrderRepository) CreateWithCustomer(ctx context.Context, user *domain.User, order *domain.Order) error {
	args := m.Called(ctx, user, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}
