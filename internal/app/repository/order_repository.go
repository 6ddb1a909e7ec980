package repository

import (
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByOrderNumber(orderNumber string) (*model.Order, error)
	FindBySessionID(sessionID string) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create stores the order and its items in one transaction.
func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"order_number": order.OrderNumber,
		"total":        order.Total,
		"items":        len(order.OrderItems),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"order_number": order.OrderNumber,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindByOrderNumber(orderNumber string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("OrderItems").First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindBySessionID returns a session's orders, newest first.
func (r *orderRepository) FindBySessionID(sessionID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("OrderItems").
		Where("session_id = ?", sessionID).
		Order("completed_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by session", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return orders, nil
}
