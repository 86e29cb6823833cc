package services

import (
	"io"
	"log/slog"

	"github.com/henriquelv/rottava-agro-pet-sub001/internal/domain"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/infra/cielo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testOrderID = "ORD-0A1B2C3D"

// testCheckout builds a two-item cart (50.00 x2 + 30.00 x1 = 130.00) for
// the given payment method.
func testCheckout(method domain.PaymentMethod) domain.Checkout {
	return domain.Checkout{
		Items: []domain.CheckoutItem{
			{ProductID: 1, Name: "Ração Premium 10kg", UnitPrice: 50.00, Quantity: 2},
			{ProductID: 2, Name: "Brinquedo Mordedor", UnitPrice: 30.00, Quantity: 1},
		},
		Customer: domain.CheckoutCustomer{
			Name:     "Joao da Silva",
			Email:    "joao@example.com",
			Document: "12345678901",
			Address: domain.CheckoutAddress{
				Street: "Rua das Flores", Number: "100", District: "Centro",
				City: "Caxias do Sul", State: "RS", ZipCode: "95000-000",
			},
		},
		Payment: domain.PaymentSelection{Type: method},
	}
}

func testSaleResponse(paymentID string, status int) *cielo.SaleResponse {
	return &cielo.SaleResponse{
		MerchantOrderID: testOrderID,
		Payment: cielo.PaymentResponse{
			PaymentID: paymentID,
			Status:    status,
		},
	}
}
