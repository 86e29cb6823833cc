package mysql

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/henriquelv/rottava-agro-pet-sub001/internal/domain"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/repository"
)

type orderRepo struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewOrderRepository(db *gorm.DB, logger *slog.Logger) repository.OrderRepository {
	return &orderRepo{db: db, logger: logger}
}

// CreateWithCustomer wraps the customer lookup and the order insert in one
// transaction so a crash between the two cannot leave a user row without
// its order.
func (r *orderRepo) CreateWithCustomer(ctx context.Context, user *domain.User, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.User
		err := tx.Where("email = ?", user.Email).First(&existing).Error
		switch {
		case err == nil:
			*user = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(user).Error; err != nil {
				r.logger.Error("user create failed", "email", user.Email, "error", err)
				return err
			}
		default:
			return err
		}

		order.UserID = user.ID
		if err := tx.Create(order).Error; err != nil {
			r.logger.Error("order create failed", "orderId", order.ID, "error", err)
			return err
		}
		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "payment_id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// UpdateStatus stamps completed_at/cancelled_at alongside the transition.
func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	updates := map[string]any{"status": status}
	now := time.Now()
	switch status {
	case domain.StatusConfirmado:
		updates["completed_at"] = now
	case domain.StatusCancelado, domain.StatusReembolsado:
		updates["cancelled_at"] = now
	}

	result := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("order status update failed", "orderId", id, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
