package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// TaxClass is the product classification assigned by the shop, e.g. "standard" or "ebook".
type TaxClass string

const (
	TaxClassStandard TaxClass = "standard"
	TaxClassExempt   TaxClass = "exempt"
)

// RateType is the VAT category a line item is reported under.
type RateType string

// remember to add new rate types to the rateTypeNames map
const (
	RateTypeStandard RateType = "standard"
	RateTypeReduced  RateType = "reduced"
)

var rateTypeNames = map[RateType]string{
	RateTypeStandard: "Standard",
	RateTypeReduced:  "Reduced",
}

func ToRateType(s string) (RateType, error) {
	rateType := RateType(s)
	if _, ok := rateTypeNames[rateType]; ok {
		return rateType, nil
	}

	return "", errors.New("invalid rate type")
}

// RateTypeNames returns display names keyed by rate type.
func RateTypeNames() map[RateType]string {
	result := make(map[RateType]string, len(rateTypeNames))
	for k, v := range rateTypeNames {
		result[k] = v
	}
	return result
}

// VatCategory is the outcome of rate-type resolution for one item and buyer country.
// Global is set when no country-specific entry existed for the item's class.
type VatCategory struct {
	Type    RateType
	Country string
	Rate    *decimal.Decimal
	Global  bool
}

// CountryRate is one row of a tax class rate table.
type CountryRate struct {
	Country string
	Rate    *decimal.Decimal
	Group   RateType
}
