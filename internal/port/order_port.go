package port

import (
	"context"

	"github.com/nikolayk812/vatmoss/internal/domain"
)

// OrderStore is the order store adapter the report pipeline reads from.
// Orders that fail domain.Order.Validate are returned as skipped, not as errors.
type OrderStore interface {
	// FetchOrders returns completed orders ascending by completion date.
	FetchOrders(ctx context.Context, filter domain.ReportFilter) ([]domain.Order, []domain.SkippedOrder, error)
	GetOrdersByIDs(ctx context.Context, orderIDs []int64) ([]domain.Order, []domain.SkippedOrder, error)

	InsertOrder(ctx context.Context, order domain.Order) (int64, error)
}

// MarkerStore persists one submission marker slot per order.
type MarkerStore interface {
	SetSubmissionMarker(ctx context.Context, orderID int64, marker domain.SubmissionMarker) error
	ClearSubmissionMarker(ctx context.Context, orderID int64) error
}

type OrderRepository interface {
	OrderStore
	MarkerStore
}
