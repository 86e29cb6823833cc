package repository

import (
	"context"

	"github.com/henriquelv/rottava-agro-pet-sub001/internal/domain"
)

type OrderRepository interface {
	// CreateWithCustomer finds or creates the user by email and persists
	// the order with its items in a single database transaction.
	CreateWithCustomer(ctx context.Context, user *domain.User, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
