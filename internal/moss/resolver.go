package moss

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/port"
	"github.com/nikolayk812/vatmoss/internal/ratetype"
	"go.uber.org/zap"
)

// Resolver maps a product and buyer country to the rate type it is reported under.
// Each capability is optional; a nil one is replaced by ratetype.Unregistered and
// every unavailable answer degrades to the reduced rate type.
type Resolver struct {
	classifier port.ProductClassifier
	overrides  port.RateOverrides
	rates      port.CountryRates
	logger     *zap.Logger
}

func NewResolver(classifier port.ProductClassifier, overrides port.RateOverrides, rates port.CountryRates, logger *zap.Logger) *Resolver {
	r := &Resolver{
		classifier: classifier,
		overrides:  overrides,
		rates:      rates,
		logger:     logger,
	}

	if r.classifier == nil {
		r.classifier = ratetype.Unregistered{}
	}
	if r.overrides == nil {
		r.overrides = ratetype.Unregistered{}
	}
	if r.rates == nil {
		r.rates = ratetype.Unregistered{}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r
}

func (r *Resolver) Resolve(ctx context.Context, productID uuid.UUID, country string) (domain.VatCategory, error) {
	class, err := r.Classify(ctx, productID)
	if err != nil {
		return domain.VatCategory{}, err
	}

	return r.ResolveClass(ctx, productID, class, country)
}

// Classify returns an empty class when no classification is available.
func (r *Resolver) Classify(ctx context.Context, productID uuid.UUID) (domain.TaxClass, error) {
	class, err := r.classifier.ClassifyProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationUnavailable) {
			r.logger.Debug("product class unavailable", zap.Stringer("product_id", productID))
			return "", nil
		}
		return "", fmt.Errorf("classifier.ClassifyProduct[%s]: %w", productID, err)
	}

	return class, nil
}

// ResolveClass resolves the rate type for an already classified product.
func (r *Resolver) ResolveClass(ctx context.Context, productID uuid.UUID, class domain.TaxClass, country string) (domain.VatCategory, error) {
	fallback := domain.VatCategory{
		Type:    domain.RateTypeReduced,
		Country: country,
		Global:  true,
	}

	switch class {
	case "":
		return fallback, nil
	case domain.TaxClassStandard:
		return r.resolveStandard(ctx, productID, fallback)
	default:
		return r.resolveCountryRate(ctx, class, fallback)
	}
}

func (r *Resolver) resolveStandard(ctx context.Context, productID uuid.UUID, fallback domain.VatCategory) (domain.VatCategory, error) {
	rateType, err := r.overrides.ProductRateType(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationUnavailable) {
			return fallback, nil
		}
		return domain.VatCategory{}, fmt.Errorf("overrides.ProductRateType[%s]: %w", productID, err)
	}

	if _, err := domain.ToRateType(string(rateType)); err != nil {
		return fallback, nil
	}

	category := fallback
	category.Type = rateType
	return category, nil
}

// resolveCountryRate takes the first table entry for the buyer country.
func (r *Resolver) resolveCountryRate(ctx context.Context, class domain.TaxClass, fallback domain.VatCategory) (domain.VatCategory, error) {
	table, err := r.rates.CountryRateTable(ctx, class)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationUnavailable) {
			return fallback, nil
		}
		return domain.VatCategory{}, fmt.Errorf("rates.CountryRateTable[%s]: %w", class, err)
	}

	for _, entry := range table {
		if entry.Country != fallback.Country {
			continue
		}

		rateType := entry.Group
		if _, err := domain.ToRateType(string(rateType)); err != nil {
			rateType = domain.RateTypeReduced
		}

		return domain.VatCategory{
			Type:    rateType,
			Country: entry.Country,
			Rate:    entry.Rate,
		}, nil
	}

	return fallback, nil
}
