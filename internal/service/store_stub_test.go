package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/babo072/my-shopping-mall/internal/model"
)

// fakeOrderStore is an in-memory OrderStore. CreateWithItems mimics the
// transactional contract: a failing item insert stores nothing.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*model.Order

	failItemInsert bool
	failMarkPaid   bool

	markPaidCalls     int
	updateStatusCalls int
	lastStatusIDs     []string
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[string]*model.Order{}}
}

func (f *fakeOrderStore) put(order *model.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.ID] = order
}

func (f *fakeOrderStore) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failItemInsert {
		return errors.New("order_items insert failed")
	}
	stored := *order
	stored.Items = append([]model.OrderItem(nil), items...)
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderStore) FindForUser(ctx context.Context, orderID, userID string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) List(ctx context.Context, userID string, statuses []model.OrderStatus) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, order := range f.orders {
		if userID != "" && order.UserID != userID {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, order.Status) {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrderStore) MarkPaid(ctx context.Context, orderID string, paymentKey *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markPaidCalls++
	if f.failMarkPaid {
		return false, errors.New("orders update failed")
	}
	order, ok := f.orders[orderID]
	if !ok || order.Status != model.OrderStatusPending {
		return false, nil
	}
	order.Status = model.OrderStatusPaid
	order.PaymentKey = paymentKey
	return true, nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, orderIDs []string, status model.OrderStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateStatusCalls++
	f.lastStatusIDs = append([]string(nil), orderIDs...)
	var rows int64
	for _, id := range orderIDs {
		if order, ok := f.orders[id]; ok {
			order.Status = status
			rows++
		}
	}
	return rows, nil
}

func (f *fakeOrderStore) UpdateMemo(ctx context.Context, orderID string, note *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.AdminNote = note
	return nil
}

// fakeViewCache is an in-memory OrderViewCache with the same generation
// semantics as the redis implementation: Invalidate advances the generation,
// orphaning every earlier Set.
type fakeViewCache struct {
	mu            sync.Mutex
	gen           int
	entries       map[string][]byte
	invalidations int
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{entries: map[string][]byte{}}
}

func (c *fakeViewCache) key(parts ...string) string {
	return fmt.Sprintf("%d:%s", c.gen, strings.Join(parts, ":"))
}

func (c *fakeViewCache) Get(ctx context.Context, parts ...string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[c.key(parts...)]
	return data, ok
}

func (c *fakeViewCache) Set(ctx context.Context, payload []byte, parts ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(parts...)] = payload
}

func (c *fakeViewCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidations++
}

func containsStatus(statuses []model.OrderStatus, s model.OrderStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
