package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("order not found")
	ErrMalformedOrder  = errors.New("malformed order")
	// ErrClassificationUnavailable is returned by rate-type capabilities that cannot
	// answer; the resolver falls back to the reduced rate type instead of failing.
	ErrClassificationUnavailable = errors.New("classification unavailable")
)

type ErrorKind string

const (
	KindPartialBatchFailure ErrorKind = "partial_batch_failure"
	KindLookupFailure       ErrorKind = "lookup_failure"
)

// ItemFailure is the failure of a single order id inside a batch.
type ItemFailure struct {
	OrderID int64
	Err     error
}

// BatchError reports ids of a batch that failed while the rest were applied.
type BatchError struct {
	Kind     ErrorKind
	Failures []ItemFailure
}

func (e *BatchError) Error() string {
	msgs := e.Messages()
	return fmt.Sprintf("%s: %d failed: %s", e.Kind, len(e.Failures), strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// FailedIDs returns the order ids in batch order.
func (e *BatchError) FailedIDs() []int64 {
	ids := make([]int64, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.OrderID)
	}
	return ids
}

// Messages renders one remediation line per failed id.
func (e *BatchError) Messages() []string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, fmt.Sprintf("order[%d]: %v", f.OrderID, f.Err))
	}
	return msgs
}
