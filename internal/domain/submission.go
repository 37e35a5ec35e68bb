package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type SubmissionMarker struct {
	SubmissionID  string
	CorrelationID string
	MarkedAt      time.Time
}

// ValidateSubmissionID accepts positive integers only.
func ValidateSubmissionID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: submission id is empty", ErrInvalidArgument)
	}

	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return fmt.Errorf("%w: submission id[%s] is not numeric", ErrInvalidArgument, id)
	}

	return nil
}

// ValidateOrderIDs rejects empty batches and non-positive ids.
func ValidateOrderIDs(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: order ids are empty", ErrInvalidArgument)
	}

	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: order id[%d] is not valid", ErrInvalidArgument, id)
		}
	}

	return nil
}
