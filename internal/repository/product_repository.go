package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vatmoss/internal/db"
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/port"
	"github.com/samber/lo"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

// ClassifyProduct reports unknown products as unavailable so the resolver can fall back.
func (r *productRepository) ClassifyProduct(ctx context.Context, productID uuid.UUID) (domain.TaxClass, error) {
	class, err := r.q.GetProductTaxClass(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("q.GetProductTaxClass: %w", domain.ErrClassificationUnavailable)
		}
		return "", fmt.Errorf("q.GetProductTaxClass: %w", err)
	}

	return domain.TaxClass(class), nil
}

// ProductRateType returns the reduced rate type when the override is unset or invalid.
func (r *productRepository) ProductRateType(ctx context.Context, productID uuid.UUID) (domain.RateType, error) {
	rateType, err := r.q.GetProductRateType(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("q.GetProductRateType: %w", domain.ErrClassificationUnavailable)
		}
		return "", fmt.Errorf("q.GetProductRateType: %w", err)
	}

	parsed, err := domain.ToRateType(lo.FromPtr(rateType))
	if err != nil {
		return domain.RateTypeReduced, nil
	}

	return parsed, nil
}

func (r *productRepository) CountryRateTable(ctx context.Context, class domain.TaxClass) ([]domain.CountryRate, error) {
	rows, err := r.q.GetTaxClassRates(ctx, string(class))
	if err != nil {
		return nil, fmt.Errorf("q.GetTaxClassRates: %w", err)
	}

	return lo.Map(rows, func(row db.TaxClassRate, _ int) domain.CountryRate {
		// an unknown group is left empty, the resolver treats it as reduced
		group, _ := domain.ToRateType(row.RateGroup)

		return domain.CountryRate{
			Country: row.Country,
			Rate:    fromNullDecimal(row.Rate),
			Group:   group,
		}
	}), nil
}

func (r *productRepository) UpsertProduct(ctx context.Context, product domain.Product) error {
	if product.ID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}

	if product.TaxClass == "" {
		return fmt.Errorf("tax class is empty")
	}

	var rateType *string
	if product.RateType != nil {
		rateType = lo.ToPtr(string(*product.RateType))
	}

	if err := r.q.UpsertProduct(ctx, db.UpsertProductParams{
		ID:           product.ID,
		Name:         product.Name,
		TaxClass:     string(product.TaxClass),
		MossRateType: rateType,
	}); err != nil {
		return fmt.Errorf("q.UpsertProduct: %w", err)
	}

	return nil
}

func (r *productRepository) UpsertCountryRate(ctx context.Context, class domain.TaxClass, rate domain.CountryRate) error {
	if class == "" {
		return fmt.Errorf("tax class is empty")
	}

	if err := domain.ValidateCountry(rate.Country); err != nil {
		return fmt.Errorf("domain.ValidateCountry: %w", err)
	}

	group := rate.Group
	if group == "" {
		group = domain.RateTypeReduced
	}

	if err := r.q.UpsertTaxClassRate(ctx, db.UpsertTaxClassRateParams{
		TaxClass:  string(class),
		Country:   rate.Country,
		Rate:      toNullDecimal(rate.Rate),
		RateGroup: string(group),
	}); err != nil {
		return fmt.Errorf("q.UpsertTaxClassRate: %w", err)
	}

	return nil
}
