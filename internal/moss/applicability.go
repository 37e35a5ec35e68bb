package moss

import (
	"fmt"

	"github.com/nikolayk812/vatmoss/internal/domain"
)

// Applicability decides which orders and items fall under MOSS reporting
// for a seller established in one country.
type Applicability struct {
	establishment string
	region        domain.Region
}

func NewApplicability(establishment string, region domain.Region) (Applicability, error) {
	var a Applicability

	if err := domain.ValidateCountry(establishment); err != nil {
		return a, fmt.Errorf("establishment: %w", err)
	}

	if len(region) == 0 {
		return a, fmt.Errorf("region is empty")
	}

	return Applicability{
		establishment: establishment,
		region:        region,
	}, nil
}

// OrderApplicable excludes business buyers and, for sellers inside the region,
// domestic sales and sales outside the region.
func (a Applicability) OrderApplicable(order domain.Order) bool {
	if order.HasVATNumber() {
		return false
	}

	if order.BuyerCountry == "" {
		return false
	}

	if a.region.Contains(a.establishment) {
		if order.BuyerCountry == a.establishment {
			return false
		}
		if !a.region.Contains(order.BuyerCountry) {
			return false
		}
	}

	return true
}

// ItemApplicable excludes free items and items of the exempt class.
func ItemApplicable(item domain.LineItem, class domain.TaxClass) bool {
	if item.Price.IsZero() {
		return false
	}

	return class != domain.TaxClassExempt
}
