package order

import (
	"context"
	"time"

	"checkout-hub/internal/common/enum"
	"checkout-hub/internal/common/models"
	database "checkout-hub/internal/pkg/db"
)

type IRepository interface {
	Create(ctx context.Context, order *models.CheckoutOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*models.CheckoutOrder, error)
	FindByEmail(ctx context.Context, email string) ([]models.CheckoutOrder, error)
	UpdateStatus(ctx context.Context, orderID string, updates map[string]any) error
	MarkNotified(ctx context.Context, orderID string, at time.Time) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, order *models.CheckoutOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (*models.CheckoutOrder, error) {
	var order models.CheckoutOrder
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) ([]models.CheckoutOrder, error) {
	var orders []models.CheckoutOrder
	err := r.db.WithContext(ctx).Where("customer_email = ?", email).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, orderID string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.CheckoutOrder{}).Where("order_id = ?", orderID).Updates(updates).Error
}

func (r *Repository) MarkNotified(ctx context.Context, orderID string, at time.Time) error {
	return r.UpdateStatus(ctx, orderID, map[string]any{
		"status":      enum.ORDER_NOTIFIED.ToString(),
		"notified_at": at,
	})
}
