package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babo072/my-shopping-mall/internal/model"
)

// OrderAdminService holds the privileged order mutations. Every method
// re-checks the caller's role; the route middleware resolves the profile
// fresh from storage per request, so a revoked admin loses access
// immediately.
type OrderAdminService struct {
	store OrderStore
	views OrderViewCache
}

// NewOrderAdminService creates the admin mutation service.
func NewOrderAdminService(store OrderStore, views OrderViewCache) *OrderAdminService {
	return &OrderAdminService{store: store, views: views}
}

// UpdateStatus overwrites one order's status. There is no transition guard:
// an admin may move an order backward through the fulfillment stages.
func (s *OrderAdminService) UpdateStatus(ctx context.Context, caller *model.Profile, orderID string, status model.OrderStatus) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if strings.TrimSpace(orderID) == "" {
		return fmt.Errorf("%w: order id is required", ErrInvalidRequest)
	}
	if !model.IsValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown order status %q", ErrInvalidRequest, status)
	}

	rows, err := s.store.UpdateStatus(ctx, []string{orderID}, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.views.Invalidate(ctx)
	return nil
}

// UpdateStatusBatch applies one status to a set of orders in a single
// update.
func (s *OrderAdminService) UpdateStatusBatch(ctx context.Context, caller *model.Profile, orderIDs []string, status model.OrderStatus) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	ids := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one order id is required", ErrInvalidRequest)
	}
	if !model.IsValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown order status %q", ErrInvalidRequest, status)
	}

	if _, err := s.store.UpdateStatus(ctx, ids, status); err != nil {
		return fmt.Errorf("update order statuses: %w", err)
	}

	s.views.Invalidate(ctx)
	return nil
}

// UpdateMemo replaces the admin note on an order. A blank or whitespace-only
// note clears the memo instead of storing an empty string.
func (s *OrderAdminService) UpdateMemo(ctx context.Context, caller *model.Profile, orderID, note string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if strings.TrimSpace(orderID) == "" {
		return fmt.Errorf("%w: order id is required", ErrInvalidRequest)
	}

	var memo *string
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		memo = &trimmed
	}

	if err := s.store.UpdateMemo(ctx, orderID, memo); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("update order memo: %w", err)
	}

	s.views.Invalidate(ctx)
	return nil
}

func requireAdmin(caller *model.Profile) error {
	if caller == nil {
		return ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
