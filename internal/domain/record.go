package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ReportingRecord is one reportable line item, the unit a MOSS return is built from.
type ReportingRecord struct {
	OrderID int64
	ItemID  uuid.UUID
	// First is true for the first reported item of an order only, so per-order
	// buyer data is not counted twice downstream.
	First        bool
	PurchaseKey  string
	Date         time.Time
	SubmissionID *string
	Net          decimal.Decimal
	Tax          decimal.Decimal
	VatRate      decimal.Decimal
	VatType      RateType
	CountryCode  string
	Currency     currency.Unit
}

type Report struct {
	Records []ReportingRecord
	Skipped []SkippedOrder
}

// SkippedOrder is an order the store could not map into a valid Order.
type SkippedOrder struct {
	OrderID int64
	Reason  string
}
