package domain

import "time"

// PaymentProcessedEvent is published to the notification exchange after an
// order is persisted, so confirmation email/SMS workers can pick it up.
type PaymentProcessedEvent struct {
	OrderID       string        `json:"orderId"`
	PaymentID     string        `json:"paymentId"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"metodoPagamento"`
	Total         float64       `json:"total"`
	CustomerEmail string        `json:"email"`
	CreatedAt     time.Time     `json:"createdAt"`
}
