package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/vatmoss/internal/domain"
)

// The three rate-type capabilities are independently optional. An implementation
// that cannot answer returns domain.ErrClassificationUnavailable.

type ProductClassifier interface {
	ClassifyProduct(ctx context.Context, productID uuid.UUID) (domain.TaxClass, error)
}

// RateOverrides returns the rate type configured on a standard-class product.
type RateOverrides interface {
	ProductRateType(ctx context.Context, productID uuid.UUID) (domain.RateType, error)
}

type CountryRates interface {
	CountryRateTable(ctx context.Context, class domain.TaxClass) ([]domain.CountryRate, error)
}

// ProductRepository backs all three capabilities with stored product settings.
type ProductRepository interface {
	ProductClassifier
	RateOverrides
	CountryRates

	UpsertProduct(ctx context.Context, product domain.Product) error
	UpsertCountryRate(ctx context.Context, class domain.TaxClass, rate domain.CountryRate) error
}
