package moss_test

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/port"
	"github.com/samber/lo"
)

var _ port.OrderRepository = (*memoryOrders)(nil)

// memoryOrders is an in-process order store with per-id failure injection.
type memoryOrders struct {
	orders map[int64]domain.Order
	failOn map[int64]error
	nextID int64
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{
		orders: make(map[int64]domain.Order),
		failOn: make(map[int64]error),
	}
}

func (m *memoryOrders) FetchOrders(_ context.Context, filter domain.ReportFilter) ([]domain.Order, []domain.SkippedOrder, error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, fmt.Errorf("filter.Validate: %w", err)
	}

	selected := lo.Filter(lo.Values(m.orders), func(o domain.Order, _ int) bool {
		if !o.Status.IsCompleted() || o.CompletedAt == nil {
			return false
		}
		if o.CompletedAt.Before(filter.Start) || o.CompletedAt.After(filter.End) {
			return false
		}

		switch filter.MarkerPredicate() {
		case domain.MarkerAbsent:
			return !o.IsSubmitted()
		case domain.MarkerPresent:
			return o.IsSubmitted()
		default:
			return true
		}
	})

	slices.SortFunc(selected, func(a, b domain.Order) int {
		if c := a.CompletedAt.Compare(*b.CompletedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var (
		orders  []domain.Order
		skipped []domain.SkippedOrder
	)
	for _, o := range selected {
		if err := o.Validate(); err != nil {
			skipped = append(skipped, domain.SkippedOrder{OrderID: o.ID, Reason: err.Error()})
			continue
		}
		orders = append(orders, o)
	}

	return orders, skipped, nil
}

func (m *memoryOrders) GetOrdersByIDs(_ context.Context, orderIDs []int64) ([]domain.Order, []domain.SkippedOrder, error) {
	if err := domain.ValidateOrderIDs(orderIDs); err != nil {
		return nil, nil, err
	}

	var (
		orders  []domain.Order
		skipped []domain.SkippedOrder
	)
	for _, id := range lo.Uniq(orderIDs) {
		o, ok := m.orders[id]
		if !ok {
			skipped = append(skipped, domain.SkippedOrder{OrderID: id, Reason: domain.ErrNotFound.Error()})
			continue
		}
		if err := o.Validate(); err != nil {
			skipped = append(skipped, domain.SkippedOrder{OrderID: id, Reason: err.Error()})
			continue
		}
		orders = append(orders, o)
	}

	return orders, skipped, nil
}

func (m *memoryOrders) InsertOrder(_ context.Context, order domain.Order) (int64, error) {
	m.nextID++
	order.ID = m.nextID
	m.orders[order.ID] = order
	return order.ID, nil
}

func (m *memoryOrders) SetSubmissionMarker(_ context.Context, orderID int64, marker domain.SubmissionMarker) error {
	if err := m.failOn[orderID]; err != nil {
		return err
	}

	o, ok := m.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}

	if prev := o.Submission; prev != nil {
		if marker.CorrelationID == "" {
			marker.CorrelationID = prev.CorrelationID
		}
		if prev.SubmissionID == marker.SubmissionID {
			marker.MarkedAt = prev.MarkedAt
		}
	}
	if marker.MarkedAt.IsZero() {
		marker.MarkedAt = time.Now()
	}

	o.Submission = &marker
	m.orders[orderID] = o

	return nil
}

func (m *memoryOrders) ClearSubmissionMarker(_ context.Context, orderID int64) error {
	if err := m.failOn[orderID]; err != nil {
		return err
	}

	if o, ok := m.orders[orderID]; ok {
		o.Submission = nil
		m.orders[orderID] = o
	}

	return nil
}

// markers returns the submission marker of every stored order, keyed by id.
func (m *memoryOrders) markers() map[int64]*domain.SubmissionMarker {
	return lo.MapValues(m.orders, func(o domain.Order, _ int64) *domain.SubmissionMarker {
		return o.Submission
	})
}
