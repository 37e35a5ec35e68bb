package moss

import (
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TotalFees sums the signed fee adjustments of an item without rounding.
func TotalFees(fees []domain.FeeAdjustment) decimal.Decimal {
	return lo.Reduce(fees, func(total decimal.Decimal, fee domain.FeeAdjustment, _ int) decimal.Decimal {
		return total.Add(fee.Amount)
	}, decimal.Zero)
}
