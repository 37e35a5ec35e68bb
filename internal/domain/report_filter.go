package domain

import (
	"fmt"
	"time"
)

// ReportFilter selects completed orders by completion date, both ends inclusive.
// SubmittedOnly is honoured only together with IncludeSubmitted.
type ReportFilter struct {
	Start            time.Time
	End              time.Time
	IncludeSubmitted bool
	SubmittedOnly    bool
}

func (f ReportFilter) Validate() error {
	if f.Start.IsZero() || f.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidArgument)
	}

	if f.End.Before(f.Start) {
		return fmt.Errorf("%w: end is before start", ErrInvalidArgument)
	}

	return nil
}

// MarkerPredicate describes how the submission marker narrows the selection.
type MarkerPredicate int

const (
	MarkerAny MarkerPredicate = iota
	MarkerAbsent
	MarkerPresent
)

func (f ReportFilter) MarkerPredicate() MarkerPredicate {
	switch {
	case !f.IncludeSubmitted:
		return MarkerAbsent
	case f.SubmittedOnly:
		return MarkerPresent
	default:
		return MarkerAny
	}
}

func (p MarkerPredicate) String() string {
	switch p {
	case MarkerAny:
		return "any"
	case MarkerAbsent:
		return "absent"
	case MarkerPresent:
		return "present"
	default:
		return "unknown"
	}
}
