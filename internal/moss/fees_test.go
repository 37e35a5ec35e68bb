package moss_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/moss"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalFees(t *testing.T) {
	tests := []struct {
		name string
		fees []string
		want string
	}{
		{name: "no fees", want: "0"},
		{name: "single discount", fees: []string{"-1.00"}, want: "-1"},
		{name: "mixed signs", fees: []string{"2.50", "-1.25", "0.005"}, want: "1.255"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees := lo.Map(tt.fees, func(s string, _ int) domain.FeeAdjustment {
				return domain.FeeAdjustment{Amount: decimal.RequireFromString(s)}
			})

			got := moss.TotalFees(fees)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), got.String())
		})
	}
}

func TestTotalFeesOrderIndependent(t *testing.T) {
	for i := 0; i < 20; i++ {
		var fees []domain.FeeAdjustment
		for j := 0; j < gofakeit.Number(1, 6); j++ {
			fees = append(fees, domain.FeeAdjustment{
				Amount: decimal.NewFromFloat(gofakeit.Price(-10, 10)),
			})
		}

		shuffled := lo.Shuffle(append([]domain.FeeAdjustment(nil), fees...))

		assert.True(t, moss.TotalFees(fees).Equal(moss.TotalFees(shuffled)))
	}
}
