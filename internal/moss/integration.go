package moss

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/port"
	"go.uber.org/zap"
)

// Integration is the filing workflow's view of one order source: it selects,
// classifies and normalizes sale records and tracks their submission state.
type Integration struct {
	source string
	name   string

	orders        port.OrderStore
	tracker       *Tracker
	resolver      *Resolver
	applicability Applicability
	normalizer    Normalizer
	logger        *zap.Logger
}

type Option func(*Integration)

// WithName sets the display name of the source.
func WithName(name string) Option {
	return func(i *Integration) {
		i.name = name
	}
}

// WithNetAdjuster installs a hook applied to every net amount before rounding.
func WithNetAdjuster(adjust NetAdjuster) Option {
	return func(i *Integration) {
		i.normalizer = NewNormalizer(adjust)
	}
}

func NewIntegration(source string, orders port.OrderRepository, resolver *Resolver, applicability Applicability, logger *zap.Logger, opts ...Option) (*Integration, error) {
	if source == "" {
		return nil, fmt.Errorf("source is empty")
	}

	if orders == nil {
		return nil, fmt.Errorf("orders is nil")
	}

	if resolver == nil {
		return nil, fmt.Errorf("resolver is nil")
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("source", source))

	tracker, err := NewTracker(orders, logger)
	if err != nil {
		return nil, fmt.Errorf("NewTracker: %w", err)
	}

	i := &Integration{
		source:        source,
		name:          source,
		orders:        orders,
		tracker:       tracker,
		resolver:      resolver,
		applicability: applicability,
		logger:        logger,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i, nil
}

func (i *Integration) Source() string {
	return i.source
}

func (i *Integration) Name() string {
	return i.name
}

// GetReportableRecords returns the reportable records of orders completed within the filter range.
// Orders the store could not read are listed in Report.Skipped.
func (i *Integration) GetReportableRecords(ctx context.Context, filter domain.ReportFilter) (domain.Report, error) {
	var report domain.Report

	orders, skipped, err := i.orders.FetchOrders(ctx, filter)
	if err != nil {
		return report, fmt.Errorf("orders.FetchOrders: %w", err)
	}

	i.logSkipped(skipped)
	report.Skipped = skipped

	for _, order := range orders {
		if !i.applicability.OrderApplicable(order) {
			continue
		}

		records, err := i.orderRecords(ctx, order)
		if err != nil {
			return domain.Report{}, fmt.Errorf("orderRecords[%d]: %w", order.ID, err)
		}

		report.Records = append(report.Records, records...)
	}

	i.logger.Info("reportable records selected",
		zap.Time("start", filter.Start),
		zap.Time("end", filter.End),
		zap.Stringer("marker", filter.MarkerPredicate()),
		zap.Int("orders", len(orders)),
		zap.Int("records", len(report.Records)),
		zap.Int("skipped", len(skipped)))

	return report, nil
}

// GetRecordsByIDs returns the records of specific orders. Buyer-level rules are not
// applied; item-level rules are. Any unreadable or unknown order fails the lookup.
func (i *Integration) GetRecordsByIDs(ctx context.Context, orderIDs []int64) ([]domain.ReportingRecord, error) {
	if err := domain.ValidateOrderIDs(orderIDs); err != nil {
		return nil, err
	}

	orders, skipped, err := i.orders.GetOrdersByIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("orders.GetOrdersByIDs: %w", err)
	}

	if len(skipped) > 0 {
		i.logSkipped(skipped)

		failures := make([]domain.ItemFailure, 0, len(skipped))
		for _, s := range skipped {
			failures = append(failures, domain.ItemFailure{OrderID: s.OrderID, Err: errors.New(s.Reason)})
		}

		return nil, &domain.BatchError{Kind: domain.KindLookupFailure, Failures: failures}
	}

	var records []domain.ReportingRecord

	for _, order := range orders {
		orderRecords, err := i.orderRecords(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("orderRecords[%d]: %w", order.ID, err)
		}

		records = append(records, orderRecords...)
	}

	return records, nil
}

func (i *Integration) MarkSubmitted(ctx context.Context, submissionID, correlationID string, orderIDs []int64) error {
	return i.tracker.Mark(ctx, submissionID, correlationID, orderIDs)
}

func (i *Integration) UnmarkSubmitted(ctx context.Context, orderIDs []int64) error {
	return i.tracker.Unmark(ctx, orderIDs)
}

func (i *Integration) orderRecords(ctx context.Context, order domain.Order) ([]domain.ReportingRecord, error) {
	var items []ClassifiedItem

	for _, item := range order.Items {
		// free items need no classification
		if item.Price.IsZero() {
			continue
		}

		class, err := i.resolver.Classify(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolver.Classify: %w", err)
		}

		if !ItemApplicable(item, class) {
			continue
		}

		category, err := i.resolver.ResolveClass(ctx, item.ProductID, class, order.BuyerCountry)
		if err != nil {
			return nil, fmt.Errorf("resolver.ResolveClass: %w", err)
		}

		items = append(items, ClassifiedItem{
			Item:     item,
			Category: category,
			FeeTotal: TotalFees(item.Fees),
		})
	}

	return i.normalizer.Normalize(order, items), nil
}

func (i *Integration) logSkipped(skipped []domain.SkippedOrder) {
	for _, s := range skipped {
		i.logger.Warn("order skipped", zap.Int64("order_id", s.OrderID), zap.String("reason", s.Reason))
	}
}
