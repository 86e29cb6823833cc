package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/henriquelv/rottava-agro-pet-sub001/internal/domain"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/infra/cielo"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/mocks"
)

func newTestService() (*PaymentService, *mocks.MockGateway, *mocks.MockOrderRepository, *mocks.MockPublisher) {
	gw := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)
	pub := new(mocks.MockPublisher)
	s := NewPaymentService(gw, repo, pub, testLogger())
	s.newOrderID = func() string { return testOrderID }
	return s, gw, repo, pub
}

func TestProcessPaymentPix(t *testing.T) {
	s, gw, repo, pub := newTestService()

	gw.On("CreatePixPayment", mock.Anything, testOrderID, mock.Anything, 130.00, 0).
		Return(testSaleResponse("pay-pix-1", 1), nil)

	var persisted *domain.Order
	repo.On("CreateWithCustomer", mock.Anything, mock.AnythingOfType("*domain.User"), mock.AnythingOfType("*domain.Order")).
		Return(nil).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*domain.User)
			user.ID = 7
			persisted = args.Get(2).(*domain.Order)
		})
	pub.On("Publish", mock.Anything, "pagamento.processado", mock.Anything).Return(nil).Maybe()

	res := s.ProcessPayment(context.Background(), testCheckout(domain.MethodPix))

	require.True(t, res.Success)
	assert.Equal(t, testOrderID, res.OrderID)
	assert.Equal(t, "pay-pix-1", res.PaymentID)
	assert.Equal(t, domain.StatusPendente, res.Status, "vendor status 1 must persist as pendente")

	require.NotNil(t, persisted)
	assert.Equal(t, 130.00, persisted.Total)
	assert.Equal(t, int64(13000), cielo.Cents(persisted.Total))
	assert.Len(t, persisted.Items, 2)
	assert.Equal(t, domain.StatusPendente, persisted.Status)
	assert.Equal(t, domain.MethodPix, persisted.PaymentMethod)
	assert.NotEmpty(t, persisted.GatewayResponse, "vendor response must be stored verbatim")

	gw.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestProcessPaymentCreditCard(t *testing.T) {
	s, gw, repo, pub := newTestService()

	checkout := testCheckout(domain.MethodCredito)
	checkout.Payment.Card = &domain.CardData{
		Number: "4111111111111111", Holder: "JOAO DA SILVA",
		ExpirationDate: "12/2030", SecurityCode: "123", Brand: "Visa",
	}
	checkout.Payment.Installments = 3
	checkout.Options.ShippingCost = 15.00

	gw.On("CreateCreditCardPayment", mock.Anything, testOrderID, mock.Anything, 145.00,
		mock.AnythingOfType("cielo.Card"), 3, true, "RottavaAgroPet").
		Return(testSaleResponse("pay-cc-1", 2), nil)
	repo.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, "pagamento.processado", mock.Anything).Return(nil).Maybe()

	res := s.ProcessPayment(context.Background(), checkout)

	require.True(t, res.Success)
	assert.Equal(t, domain.StatusConfirmado, res.Status)
	gw.AssertExpectations(t)
}

func TestProcessPaymentCreditCardWithoutCardData(t *testing.T) {
	s, gw, repo, _ := newTestService()

	res := s.ProcessPayment(context.Background(), testCheckout(domain.MethodCredito))

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	gw.AssertNotCalled(t, "CreateCreditCardPayment")
	repo.AssertNotCalled(t, "CreateWithCustomer")
}

func TestProcessPaymentDebitReturnsFailureEnvelope(t *testing.T) {
	s, gw, repo, _ := newTestService()

	res := s.ProcessPayment(context.Background(), testCheckout(domain.MethodDebito))

	assert.False(t, res.Success)
	assert.Equal(t, ErrDebitCardNotSupported.Error(), res.Error)
	gw.AssertNotCalled(t, "CreateDebitCardPayment")
	repo.AssertNotCalled(t, "CreateWithCustomer")
}

func TestProcessPaymentBoletoDefaultInstructions(t *testing.T) {
	s, gw, repo, pub := newTestService()

	checkout := testCheckout(domain.MethodBoleto)
	checkout.Payment.BoletoDueDate = "2026-09-05"

	gw.On("CreateBoletoPayment", mock.Anything, testOrderID, mock.Anything, 130.00,
		cielo.BoletoOptions{ExpirationDate: "2026-09-05", Instructions: defaultBoletoInstructions}).
		Return(testSaleResponse("pay-bol-1", 1), nil)
	repo.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, "pagamento.processado", mock.Anything).Return(nil).Maybe()

	res := s.ProcessPayment(context.Background(), checkout)

	require.True(t, res.Success)
	gw.AssertExpectations(t)
}

func TestProcessPaymentGatewayError(t *testing.T) {
	s, gw, repo, _ := newTestService()

	gw.On("CreatePixPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &cielo.Error{StatusCode: 422, Code: 126, Message: "Credit Card Expiration Date is invalid"})

	res := s.ProcessPayment(context.Background(), testCheckout(domain.MethodPix))

	assert.False(t, res.Success)
	assert.Equal(t, 422, res.StatusCode)
	assert.Equal(t, "Credit Card Expiration Date is invalid", res.Error)
	repo.AssertNotCalled(t, "CreateWithCustomer")
}

func TestProcessPaymentPersistenceError(t *testing.T) {
	s, gw, repo, _ := newTestService()

	gw.On("CreatePixPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testSaleResponse("pay-pix-2", 1), nil)
	repo.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	res := s.ProcessPayment(context.Background(), testCheckout(domain.MethodPix))

	assert.False(t, res.Success)
	assert.Equal(t, "falha ao registrar o pedido", res.Error)
}

func TestProcessPaymentUnknownMethod(t *testing.T) {
	s, _, _, _ := newTestService()

	checkout := testCheckout("bitcoin")

	res := s.ProcessPayment(context.Background(), checkout)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "método de pagamento desconhecido")
}

func TestGetPaymentMapsVendorStatus(t *testing.T) {
	s, gw, _, _ := newTestService()

	gw.On("Get", mock.Anything, "pay-9").Return(testSaleResponse("pay-9", 2), nil)

	res := s.GetPayment(context.Background(), "pay-9")

	require.True(t, res.Success)
	assert.Equal(t, domain.StatusConfirmado, res.Status)
	assert.Equal(t, testOrderID, res.OrderID)
}

func TestCapturePaymentUpdatesOrder(t *testing.T) {
	s, gw, repo, _ := newTestService()

	gw.On("Capture", mock.Anything, "pay-10", (*float64)(nil)).
		Return(&cielo.CaptureResponse{Status: 2}, nil)
	repo.On("FindByPaymentID", mock.Anything, "pay-10").
		Return(&domain.Order{ID: testOrderID, PaymentID: "pay-10", Status: domain.StatusPendente}, nil)
	repo.On("UpdateStatus", mock.Anything, testOrderID, domain.StatusConfirmado).Return(nil)

	res := s.CapturePayment(context.Background(), "pay-10", nil)

	require.True(t, res.Success)
	assert.Equal(t, domain.StatusConfirmado, res.Status)
	assert.Equal(t, testOrderID, res.OrderID)
	repo.AssertExpectations(t)
}

func TestCancelPaymentUpdatesOrder(t *testing.T) {
	s, gw, repo, _ := newTestService()

	amount := 50.00
	gw.On("Void", mock.Anything, "pay-11", &amount).
		Return(&cielo.CaptureResponse{Status: 10}, nil)
	repo.On("FindByPaymentID", mock.Anything, "pay-11").
		Return(&domain.Order{ID: testOrderID, PaymentID: "pay-11", Status: domain.StatusConfirmado}, nil)
	repo.On("UpdateStatus", mock.Anything, testOrderID, domain.StatusCancelado).Return(nil)

	res := s.CancelPayment(context.Background(), "pay-11", &amount)

	require.True(t, res.Success)
	assert.Equal(t, domain.StatusCancelado, res.Status)
	repo.AssertExpectations(t)
}

func TestCapturePaymentWithoutLocalOrder(t *testing.T) {
	s, gw, repo, _ := newTestService()

	gw.On("Capture", mock.Anything, "pay-12", (*float64)(nil)).
		Return(&cielo.CaptureResponse{Status: 2}, nil)
	repo.On("FindByPaymentID", mock.Anything, "pay-12").Return(nil, nil)

	res := s.CapturePayment(context.Background(), "pay-12", nil)

	require.True(t, res.Success)
	assert.Empty(t, res.OrderID)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestGetOrder(t *testing.T) {
	s, _, repo, _ := newTestService()

	repo.On("FindByID", mock.Anything, testOrderID).
		Return(&domain.Order{ID: testOrderID}, nil)
	repo.On("FindByID", mock.Anything, "ORD-MISSING").Return(nil, nil)

	order, err := s.GetOrder(context.Background(), testOrderID)
	require.NoError(t, err)
	assert.Equal(t, testOrderID, order.ID)

	_, err = s.GetOrder(context.Background(), "ORD-MISSING")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGenerateOrderIDFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := generateOrderID()
		assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}
