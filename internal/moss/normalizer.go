package moss

import (
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	amountPlaces = 2
	ratePlaces   = 3
)

// ClassifiedItem is an eligible line item with its resolved category and fee total.
type ClassifiedItem struct {
	Item     domain.LineItem
	Category domain.VatCategory
	FeeTotal decimal.Decimal
}

// NetAdjuster rewrites the unrounded net amount of an item of the given order.
type NetAdjuster func(net decimal.Decimal, orderID int64) decimal.Decimal

type Normalizer struct {
	adjust NetAdjuster
}

func NewNormalizer(adjust NetAdjuster) Normalizer {
	return Normalizer{adjust: adjust}
}

// Normalize produces one record per item, in item order. Only the first record
// of the order has First set.
func (n Normalizer) Normalize(order domain.Order, items []ClassifiedItem) []domain.ReportingRecord {
	if len(items) == 0 {
		return nil
	}

	var submissionID *string
	if order.Submission != nil {
		submissionID = lo.ToPtr(order.Submission.SubmissionID)
	}

	records := make([]domain.ReportingRecord, 0, len(items))

	for idx, ci := range items {
		net := ci.Item.Price.Sub(ci.Item.Tax).Add(ci.FeeTotal)
		if n.adjust != nil {
			net = n.adjust(net, order.ID)
		}

		records = append(records, domain.ReportingRecord{
			OrderID:      order.ID,
			ItemID:       ci.Item.ProductID,
			First:        idx == 0,
			PurchaseKey:  order.PurchaseKey,
			Date:         lo.FromPtr(order.CompletedAt),
			SubmissionID: submissionID,
			Net:          net.Round(amountPlaces),
			Tax:          ci.Item.Tax.Round(amountPlaces),
			VatRate:      itemRate(order, ci.Item).Round(ratePlaces),
			VatType:      ci.Category.Type,
			CountryCode:  order.BuyerCountry,
			Currency:     order.Currency,
		})
	}

	return records
}

// itemRate prefers the item rate over the order rate, defaulting to zero.
func itemRate(order domain.Order, item domain.LineItem) decimal.Decimal {
	if item.VatRate != nil {
		return *item.VatRate
	}

	if order.VatRate != nil {
		return *order.VatRate
	}

	return decimal.Zero
}
