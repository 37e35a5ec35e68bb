package domain

import "errors"

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusRenewal   OrderStatus = "renewal"
	OrderStatusRefunded  OrderStatus = "refunded"
	OrderStatusFailed    OrderStatus = "failed"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:   {},
	OrderStatusCompleted: {},
	OrderStatusRenewal:   {},
	OrderStatusRefunded:  {},
	OrderStatusFailed:    {},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

// IsCompleted reports whether the order was paid; only those carry a completion date.
func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusCompleted || s == OrderStatusRenewal
}

// CompletedStatuses lists the statuses the report query selects.
func CompletedStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusCompleted, OrderStatusRenewal}
}
