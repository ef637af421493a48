package infrastructure

import (
	"context"
	"errors"

	"github.com/babo072/my-shopping-mall/internal/model"
	"github.com/babo072/my-shopping-mall/internal/service"

	"gorm.io/gorm"
)

// OrderStore is the gorm-backed persistence layer for orders.
type OrderStore struct {
	db *gorm.DB
}

var _ service.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates an order store over db.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// CreateWithItems inserts the order and its line items in one transaction.
func (s *OrderStore) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// FindForUser loads an order scoped to its owner. An order belonging to a
// different user is reported as not found.
func (s *OrderStore) FindForUser(ctx context.Context, orderID, userID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) List(ctx context.Context, userID string, statuses []model.OrderStatus) ([]model.Order, error) {
	query := s.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkPaid is the conditional pending→paid transition. The WHERE clause on
// the current status makes the update a compare-and-swap: under concurrent
// verifications only one caller sees a row affected.
func (s *OrderStore) MarkPaid(ctx context.Context, orderID string, paymentKey *string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, model.OrderStatusPending).
		Updates(map[string]any{
			"status":      model.OrderStatusPaid,
			"payment_key": paymentKey,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, orderIDs []string, status model.OrderStatus) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id IN ?", orderIDs).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (s *OrderStore) UpdateMemo(ctx context.Context, orderID string, note *string) error {
	res := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("admin_note", note)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}
