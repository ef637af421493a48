package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/babo072/my-shopping-mall/internal/model"
)

// PaymentGateway confirms a payment with the external provider. The gorm-free
// interface keeps the verification workflow testable against a fake.
type PaymentGateway interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (json.RawMessage, error)
}

// VerifyResult is the outcome of a successful verification.
type VerifyResult struct {
	// AlreadyProcessed is set when the order was paid before this call;
	// no gateway confirmation was issued.
	AlreadyProcessed bool

	// Confirmation is the gateway's confirmation payload, or the locally
	// synthesized one in test mode. Empty when AlreadyProcessed.
	Confirmation json.RawMessage
}

// fakeConfirmation mirrors the gateway's confirmation shape for test mode.
type fakeConfirmation struct {
	OrderID     string `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
	Status      string `json:"status"`
}

// PaymentService verifies payments and finalizes orders.
type PaymentService struct {
	orders  OrderStore
	gateway PaymentGateway
	views   OrderViewCache
}

// NewPaymentService creates a payment verification service.
func NewPaymentService(orders OrderStore, gw PaymentGateway, views OrderViewCache) *PaymentService {
	return &PaymentService{orders: orders, gateway: gw, views: views}
}

// Verify confirms the payment for an order owned by userID and transitions
// it to paid at most once.
//
// The claimed amount is never trusted beyond an equality check against the
// stored total. The pending→paid write is conditional on the order still
// being pending, so two concurrent verifications finalize the order exactly
// once; the loser observes the idempotent short-circuit.
func (s *PaymentService) Verify(ctx context.Context, userID string, req *model.VerifyPaymentRequest) (*VerifyResult, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: orderId is required", ErrInvalidRequest)
	}
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrInvalidRequest)
	}

	order, err := s.orders.FindForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	// Idempotent short-circuit: a paid order is terminal for this service
	// and the gateway is not contacted again.
	if order.Status == model.OrderStatusPaid {
		return &VerifyResult{AlreadyProcessed: true}, nil
	}

	if float64(order.TotalPrice) != req.Amount {
		return nil, ErrAmountMismatch
	}

	var confirmation json.RawMessage
	if req.Fake == "1" {
		confirmation, err = json.Marshal(fakeConfirmation{
			OrderID:     orderID,
			TotalAmount: order.TotalPrice,
			Status:      "DONE",
		})
		if err != nil {
			return nil, fmt.Errorf("synthesize confirmation: %w", err)
		}
	} else {
		if strings.TrimSpace(req.PaymentKey) == "" {
			return nil, fmt.Errorf("%w: paymentKey is required", ErrInvalidRequest)
		}
		confirmation, err = s.gateway.Confirm(ctx, req.PaymentKey, orderID, order.TotalPrice)
		if err != nil {
			return nil, err
		}
	}

	var paymentKey *string
	if k := strings.TrimSpace(req.PaymentKey); k != "" {
		paymentKey = &k
	}

	won, err := s.orders.MarkPaid(ctx, orderID, paymentKey)
	if err != nil {
		// The gateway may already have confirmed the payment while the
		// local update failed; no compensating cancellation is issued.
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !won {
		// Lost a race against a concurrent verification. Confirm the
		// order really is paid before reporting the idempotent success.
		current, rerr := s.orders.FindForUser(ctx, orderID, userID)
		if rerr == nil && current.Status == model.OrderStatusPaid {
			return &VerifyResult{AlreadyProcessed: true}, nil
		}
		return nil, fmt.Errorf("update order status: order %s left %s", orderID, order.Status)
	}

	s.views.Invalidate(ctx)
	return &VerifyResult{Confirmation: confirmation}, nil
}
