package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/babo072/my-shopping-mall/internal/auth"
	"github.com/babo072/my-shopping-mall/internal/cache"
	"github.com/babo072/my-shopping-mall/internal/middleware"
	"github.com/babo072/my-shopping-mall/internal/model"
	"github.com/babo072/my-shopping-mall/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paymentStore is a single-order OrderStore stub for endpoint tests.
type paymentStore struct {
	order *model.Order
}

func (s *paymentStore) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	return nil
}

func (s *paymentStore) FindForUser(ctx context.Context, orderID, userID string) (*model.Order, error) {
	if s.order == nil || s.order.ID != orderID || s.order.UserID != userID {
		return nil, service.ErrNotFound
	}
	copied := *s.order
	return &copied, nil
}

func (s *paymentStore) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	if s.order == nil || s.order.ID != orderID {
		return nil, service.ErrNotFound
	}
	copied := *s.order
	return &copied, nil
}

func (s *paymentStore) List(ctx context.Context, userID string, statuses []model.OrderStatus) ([]model.Order, error) {
	return nil, nil
}

func (s *paymentStore) MarkPaid(ctx context.Context, orderID string, paymentKey *string) (bool, error) {
	if s.order == nil || s.order.ID != orderID || s.order.Status != model.OrderStatusPending {
		return false, nil
	}
	s.order.Status = model.OrderStatusPaid
	s.order.PaymentKey = paymentKey
	return true, nil
}

func (s *paymentStore) UpdateStatus(ctx context.Context, orderIDs []string, status model.OrderStatus) (int64, error) {
	return 0, nil
}

func (s *paymentStore) UpdateMemo(ctx context.Context, orderID string, note *string) error {
	return nil
}

// rejectingGateway fails every confirmation with a provider error payload.
type rejectingGateway struct{}

func (rejectingGateway) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (json.RawMessage, error) {
	return nil, &service.GatewayError{
		StatusCode: http.StatusForbidden,
		Payload:    json.RawMessage(`{"code":"REJECT_CARD_COMPANY","message":"declined"}`),
	}
}

func newPaymentRouter(t *testing.T, store service.OrderStore, gw service.PaymentGateway) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := auth.NewService([]byte("test-secret"))
	token, err := authService.IssueToken(&model.Profile{
		UserID: "user-1",
		Email:  "user@example.com",
		Role:   model.RoleCustomer,
	})
	require.NoError(t, err)

	payments := service.NewPaymentService(store, gw, cache.NewOrderViews(nil))
	h := NewPaymentHandler(payments)

	router := gin.New()
	router.POST("/api/payment/verify", middleware.AuthMiddleware(authService), h.Verify)
	return router, token
}

func postVerify(router *gin.Engine, token string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestVerifyEndpointRequiresToken(t *testing.T) {
	router, _ := newPaymentRouter(t, &paymentStore{}, rejectingGateway{})

	rec := postVerify(router, "", gin.H{"orderId": "order-1", "amount": 1000})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyEndpointFakeMode(t *testing.T) {
	store := &paymentStore{order: &model.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalPrice: 2500,
		Status:     model.OrderStatusPending,
	}}
	router, token := newPaymentRouter(t, store, rejectingGateway{})

	rec := postVerify(router, token, gin.H{"orderId": "order-1", "amount": 2500, "fake": "1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			OrderID     string `json:"orderId"`
			TotalAmount int64  `json:"totalAmount"`
			Status      string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "order-1", body.Data.OrderID)
	assert.Equal(t, int64(2500), body.Data.TotalAmount)
	assert.Equal(t, "DONE", body.Data.Status)
	assert.Equal(t, model.OrderStatusPaid, store.order.Status)
}

func TestVerifyEndpointRepeatIsIdempotent(t *testing.T) {
	store := &paymentStore{order: &model.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalPrice: 2500,
		Status:     model.OrderStatusPending,
	}}
	router, token := newPaymentRouter(t, store, rejectingGateway{})

	first := postVerify(router, token, gin.H{"orderId": "order-1", "amount": 2500, "fake": "1"})
	require.Equal(t, http.StatusOK, first.Code)

	second := postVerify(router, token, gin.H{"orderId": "order-1", "amount": 2500, "fake": "1"})
	require.Equal(t, http.StatusOK, second.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "order has already been processed", body.Message)
}

func TestVerifyEndpointAmountMismatch(t *testing.T) {
	store := &paymentStore{order: &model.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalPrice: 2500,
		Status:     model.OrderStatusPending,
	}}
	router, token := newPaymentRouter(t, store, rejectingGateway{})

	rec := postVerify(router, token, gin.H{"orderId": "order-1", "amount": 9999, "fake": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.OrderStatusPending, store.order.Status)
}

func TestVerifyEndpointForwardsGatewayRejection(t *testing.T) {
	store := &paymentStore{order: &model.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalPrice: 2500,
		Status:     model.OrderStatusPending,
	}}
	router, token := newPaymentRouter(t, store, rejectingGateway{})

	rec := postVerify(router, token, gin.H{
		"paymentKey": "pk_test",
		"orderId":    "order-1",
		"amount":     2500,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "REJECT_CARD_COMPANY", body.Error.Code)
	assert.Equal(t, model.OrderStatusPending, store.order.Status)
}

// htmlGateway fails every confirmation the way a proxy in front of the
// provider does: a non-JSON body.
type htmlGateway struct{}

func (htmlGateway) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (json.RawMessage, error) {
	return nil, &service.GatewayError{
		StatusCode: http.StatusBadGateway,
		Payload:    json.RawMessage("<html>502 Bad Gateway</html>"),
	}
}

func TestVerifyEndpointNonJSONGatewayBody(t *testing.T) {
	store := &paymentStore{order: &model.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalPrice: 2500,
		Status:     model.OrderStatusPending,
	}}
	router, token := newPaymentRouter(t, store, htmlGateway{})

	rec := postVerify(router, token, gin.H{
		"paymentKey": "pk_test",
		"orderId":    "order-1",
		"amount":     2500,
	})
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "<html>502 Bad Gateway</html>", body.Error)
	assert.Equal(t, model.OrderStatusPending, store.order.Status)
}

func TestVerifyEndpointOtherUsersOrder(t *testing.T) {
	store := &paymentStore{order: &model.Order{
		ID:         "order-1",
		UserID:     "someone-else",
		TotalPrice: 2500,
		Status:     model.OrderStatusPending,
	}}
	router, token := newPaymentRouter(t, store, rejectingGateway{})

	rec := postVerify(router, token, gin.H{"orderId": "order-1", "amount": 2500, "fake": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, model.OrderStatusPending, store.order.Status)
}
