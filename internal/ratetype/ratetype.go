// Package ratetype provides in-process implementations of the rate-type capabilities.
// Postgres-backed ones live in the repository package.
package ratetype

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/port"
)

var (
	_ port.ProductClassifier = Unregistered{}
	_ port.RateOverrides     = Unregistered{}
	_ port.CountryRates      = Unregistered{}

	_ port.ProductClassifier = Static{}
	_ port.RateOverrides     = Static{}
	_ port.CountryRates      = Static{}
)

// Unregistered stands in for a capability that is not installed.
type Unregistered struct{}

func (Unregistered) ClassifyProduct(context.Context, uuid.UUID) (domain.TaxClass, error) {
	return "", domain.ErrClassificationUnavailable
}

func (Unregistered) ProductRateType(context.Context, uuid.UUID) (domain.RateType, error) {
	return "", domain.ErrClassificationUnavailable
}

func (Unregistered) CountryRateTable(context.Context, domain.TaxClass) ([]domain.CountryRate, error) {
	return nil, domain.ErrClassificationUnavailable
}

// Static answers from fixed in-memory tables.
type Static struct {
	Classes   map[uuid.UUID]domain.TaxClass
	Overrides map[uuid.UUID]domain.RateType
	Rates     map[domain.TaxClass][]domain.CountryRate
}

func (s Static) ClassifyProduct(_ context.Context, productID uuid.UUID) (domain.TaxClass, error) {
	class, ok := s.Classes[productID]
	if !ok {
		return "", domain.ErrClassificationUnavailable
	}
	return class, nil
}

// ProductRateType falls back to reduced for products without a valid override.
func (s Static) ProductRateType(_ context.Context, productID uuid.UUID) (domain.RateType, error) {
	rateType, err := domain.ToRateType(string(s.Overrides[productID]))
	if err != nil {
		return domain.RateTypeReduced, nil
	}
	return rateType, nil
}

func (s Static) CountryRateTable(_ context.Context, class domain.TaxClass) ([]domain.CountryRate, error) {
	return s.Rates[class], nil
}
