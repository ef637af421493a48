package model

import "time"

// OrderStatus is the fulfillment stage of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// OrderStatusInProgress is a list-filter value aggregating every order that
// has not been delivered yet. It is never stored.
const OrderStatusInProgress = "in-progress"

var orderStatusValues = map[OrderStatus]struct{}{
	OrderStatusPending:   {},
	OrderStatusPaid:      {},
	OrderStatusShipped:   {},
	OrderStatusDelivered: {},
}

// IsValidOrderStatus reports whether s is a storable status value.
func IsValidOrderStatus(s OrderStatus) bool {
	_, ok := orderStatusValues[s]
	return ok
}

// ExpandStatusFilter resolves a list-filter value into the statuses it
// covers. An empty filter matches everything.
func ExpandStatusFilter(filter string) ([]OrderStatus, error) {
	switch {
	case filter == "":
		return nil, nil
	case filter == OrderStatusInProgress:
		return []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped}, nil
	case IsValidOrderStatus(OrderStatus(filter)):
		return []OrderStatus{OrderStatus(filter)}, nil
	default:
		return nil, ErrUnknownStatusFilter
	}
}

// Order is a customer's purchase request. TotalPrice is in the smallest
// currency unit and, once the order is paid, immutable.
type Order struct {
	ID         string      `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID     string      `json:"user_id" gorm:"type:varchar(36);index;not null"`
	TotalPrice int64       `json:"total_price" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(32);index;not null"`
	PaymentKey *string     `json:"payment_key" gorm:"type:varchar(255)"`
	AdminNote  *string     `json:"admin_note" gorm:"type:text"`
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is one product-quantity tuple within an order. Price is a
// snapshot of the unit price at order time, not a live join.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   string  `json:"order_id" gorm:"type:varchar(36);index;not null"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);index;not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"type:numeric;not null"`
}

// CreateOrderItem is one cart line submitted at checkout.
type CreateOrderItem struct {
	ProductID string  `json:"productId" binding:"required"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
}

// CreateOrderRequest submits the cart as a new order.
type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items" binding:"required"`
}

// VerifyPaymentRequest asks the service to confirm a payment and finalize
// the order. Fake selects the test-mode branch when set to "1".
type VerifyPaymentRequest struct {
	PaymentKey string  `json:"paymentKey"`
	OrderID    string  `json:"orderId"`
	Amount     float64 `json:"amount"`
	Fake       string  `json:"fake"`
}

// UpdateOrderStatusRequest mutates a single order's status. RedirectTo, when
// set, turns the response into a 303 redirect (form-submission flows).
type UpdateOrderStatusRequest struct {
	Status     OrderStatus `json:"status" form:"status" binding:"required"`
	RedirectTo string      `json:"redirectTo" form:"redirectTo"`
}

// UpdateOrderStatusBatchRequest mutates a set of orders in one update.
type UpdateOrderStatusBatchRequest struct {
	OrderIDs []string    `json:"orderIds" binding:"required"`
	Status   OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderMemoRequest replaces the admin note on an order. A blank note
// clears the memo.
type UpdateOrderMemoRequest struct {
	AdminNote  string `json:"adminNote" form:"adminNote"`
	RedirectTo string `json:"redirectTo" form:"redirectTo"`
}
