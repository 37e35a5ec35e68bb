package moss

import (
	"context"
	"fmt"

	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/port"
	"go.uber.org/zap"
)

// Tracker records which orders were included in a filed submission.
// Each id is written on its own; a failure never rolls back other ids of the batch.
type Tracker struct {
	markers port.MarkerStore
	logger  *zap.Logger
}

func NewTracker(markers port.MarkerStore, logger *zap.Logger) (*Tracker, error) {
	if markers == nil {
		return nil, fmt.Errorf("markers is nil")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Tracker{
		markers: markers,
		logger:  logger,
	}, nil
}

// Mark sets the submission marker of every order. Marking again with the same
// submission id leaves the marker unchanged.
func (t *Tracker) Mark(ctx context.Context, submissionID, correlationID string, orderIDs []int64) error {
	if err := domain.ValidateSubmissionID(submissionID); err != nil {
		return err
	}

	if err := domain.ValidateOrderIDs(orderIDs); err != nil {
		return err
	}

	marker := domain.SubmissionMarker{
		SubmissionID:  submissionID,
		CorrelationID: correlationID,
	}

	return t.apply(orderIDs, "mark", func(orderID int64) error {
		return t.markers.SetSubmissionMarker(ctx, orderID, marker)
	})
}

// Unmark clears the submission marker of every order; unmarked orders are left as is.
func (t *Tracker) Unmark(ctx context.Context, orderIDs []int64) error {
	if err := domain.ValidateOrderIDs(orderIDs); err != nil {
		return err
	}

	return t.apply(orderIDs, "unmark", func(orderID int64) error {
		return t.markers.ClearSubmissionMarker(ctx, orderID)
	})
}

func (t *Tracker) apply(orderIDs []int64, op string, fn func(orderID int64) error) error {
	var failures []domain.ItemFailure

	for _, orderID := range orderIDs {
		if err := fn(orderID); err != nil {
			t.logger.Warn("submission marker update failed",
				zap.String("op", op),
				zap.Int64("order_id", orderID),
				zap.Error(err))

			failures = append(failures, domain.ItemFailure{OrderID: orderID, Err: err})
		}
	}

	if len(failures) > 0 {
		return &domain.BatchError{
			Kind:     domain.KindPartialBatchFailure,
			Failures: failures,
		}
	}

	t.logger.Info("submission markers updated", zap.String("op", op), zap.Int("orders", len(orderIDs)))

	return nil
}
