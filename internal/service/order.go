package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/babo072/my-shopping-mall/internal/model"

	"github.com/google/uuid"
)

// OrderStore is the persistence surface the order and payment services rely
// on. The gorm implementation lives in internal/infrastructure.
type OrderStore interface {
	// CreateWithItems inserts the order and its line items in a single
	// transaction: a failing item insert leaves no orphaned order row.
	CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error

	// FindForUser loads an order scoped to its owner. An order that exists
	// but belongs to someone else is reported as not found.
	FindForUser(ctx context.Context, orderID, userID string) (*model.Order, error)

	FindByID(ctx context.Context, orderID string) (*model.Order, error)

	// List returns orders newest first. An empty userID lists all orders;
	// an empty status slice matches every status.
	List(ctx context.Context, userID string, statuses []model.OrderStatus) ([]model.Order, error)

	// MarkPaid performs the conditional pending→paid transition and reports
	// whether this call won it. Concurrent verifications therefore finalize
	// an order at most once.
	MarkPaid(ctx context.Context, orderID string, paymentKey *string) (bool, error)

	// UpdateStatus overwrites the status of the given orders and returns
	// the number of rows touched. No transition guard is applied.
	UpdateStatus(ctx context.Context, orderIDs []string, status model.OrderStatus) (int64, error)

	// UpdateMemo replaces the admin note; nil clears it.
	UpdateMemo(ctx context.Context, orderID string, note *string) error
}

// OrderViewCache is the cached-view surface for order listings and details.
// Every order mutation calls Invalidate so a later Get misses and the view
// is rebuilt from storage. The redis implementation lives in internal/cache.
type OrderViewCache interface {
	Get(ctx context.Context, parts ...string) ([]byte, bool)
	Set(ctx context.Context, payload []byte, parts ...string)
	Invalidate(ctx context.Context)
}

// CartTotal computes the order total: the sum of price×quantity over all
// items, rounded once at the end to the nearest smallest currency unit.
func CartTotal(items []model.CreateOrderItem) int64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return int64(math.Round(sum))
}

// OrderService creates and reads orders.
type OrderService struct {
	store OrderStore
	views OrderViewCache
}

// NewOrderService creates an order service.
func NewOrderService(store OrderStore, views OrderViewCache) *OrderService {
	return &OrderService{store: store, views: views}
}

// Create submits the cart as a new pending order owned by userID and
// returns the created record including its generated id and total.
func (s *OrderService) Create(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", ErrInvalidRequest)
	}
	for _, it := range req.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, fmt.Errorf("%w: item product id is required", ErrInvalidRequest)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", ErrInvalidRequest)
		}
		if it.Price < 0 || math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
			return nil, fmt.Errorf("%w: item price must be a non-negative number", ErrInvalidRequest)
		}
	}

	order := &model.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		TotalPrice: CartTotal(req.Items),
		Status:     model.OrderStatusPending,
	}
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.OrderItem{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if err := s.store.CreateWithItems(ctx, order, items); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	order.Items = items

	s.views.Invalidate(ctx)
	return order, nil
}

// List returns the caller's orders, or every order for an admin, optionally
// narrowed by a status filter ("in-progress" expands to pending|paid|shipped).
// Results are served through the view cache when possible.
func (s *OrderService) List(ctx context.Context, caller *model.Profile, statusFilter string) ([]model.Order, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	statuses, err := model.ExpandStatusFilter(statusFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	scope := caller.UserID
	if caller.IsAdmin() {
		scope = ""
	}

	if data, ok := s.views.Get(ctx, "list", scope, statusFilter); ok {
		var cached []model.Order
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	orders, err := s.store.List(ctx, scope, statuses)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if data, err := json.Marshal(orders); err == nil {
		s.views.Set(ctx, data, "list", scope, statusFilter)
	}
	return orders, nil
}

// Get loads one order. Non-admin callers only see their own orders; an
// order owned by someone else is indistinguishable from a missing one.
func (s *OrderService) Get(ctx context.Context, caller *model.Profile, orderID string) (*model.Order, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidRequest)
	}

	scope := caller.UserID
	if caller.IsAdmin() {
		scope = ""
	}

	if data, ok := s.views.Get(ctx, "detail", scope, orderID); ok {
		var cached model.Order
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var order *model.Order
	var err error
	if caller.IsAdmin() {
		order, err = s.store.FindByID(ctx, orderID)
	} else {
		order, err = s.store.FindForUser(ctx, orderID, caller.UserID)
	}
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(order); err == nil {
		s.views.Set(ctx, data, "detail", scope, orderID)
	}
	return order, nil
}
