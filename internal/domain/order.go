package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

type Order struct {
	ID             int64
	PurchaseKey    string
	Status         OrderStatus
	BuyerName      string
	BuyerCountry   string
	BuyerVATNumber string
	Currency       currency.Unit
	// VatRate is the order-level rate used when an item carries none.
	VatRate *decimal.Decimal
	Items   []LineItem

	Submission *SubmissionMarker

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type LineItem struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Tax       decimal.Decimal
	VatRate   *decimal.Decimal
	Fees      []FeeAdjustment
}

// FeeAdjustment is a signed delta on a line item, e.g. a bundle discount.
type FeeAdjustment struct {
	Amount decimal.Decimal
	Label  string
}

// HasVATNumber reports whether the buyer identified as a business.
func (o Order) HasVATNumber() bool {
	return strings.TrimSpace(o.BuyerVATNumber) != ""
}

func (o Order) IsSubmitted() bool {
	return o.Submission != nil
}

// Validate checks the shape every stored order must have before it enters the report pipeline.
func (o Order) Validate() error {
	if o.ID <= 0 {
		return fmt.Errorf("%w: id is not set", ErrMalformedOrder)
	}

	if !o.Status.IsCompleted() {
		return fmt.Errorf("%w: status[%s] is not completed", ErrMalformedOrder, o.Status)
	}

	if o.CompletedAt == nil || o.CompletedAt.IsZero() {
		return fmt.Errorf("%w: completion date is not set", ErrMalformedOrder)
	}

	if err := ValidateCountry(o.BuyerCountry); err != nil {
		return fmt.Errorf("%w: buyer country: %w", ErrMalformedOrder, err)
	}

	if o.Currency == (currency.Unit{}) {
		return fmt.Errorf("%w: currency is not set", ErrMalformedOrder)
	}

	return nil
}

// ValidateCountry accepts upper-case ISO 3166-1 alpha-2 region codes only.
func ValidateCountry(code string) error {
	if len(code) != 2 || strings.ToUpper(code) != code {
		return fmt.Errorf("country[%s] is not an alpha-2 code", code)
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return fmt.Errorf("language.ParseRegion[%s]: %w", code, err)
	}

	if !region.IsCountry() {
		return fmt.Errorf("region[%s] is not a country", code)
	}

	return nil
}
