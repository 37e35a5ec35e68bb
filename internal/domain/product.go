package domain

import "github.com/google/uuid"

// Product holds the per-product settings the rate-type resolver consults.
// RateType is the site override for standard-class products and may be unset.
type Product struct {
	ID       uuid.UUID
	Name     string
	TaxClass TaxClass
	RateType *RateType
}
