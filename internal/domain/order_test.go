package domain_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestOrderValidate(t *testing.T) {
	valid := func() domain.Order {
		return domain.Order{
			ID:           1,
			Status:       domain.OrderStatusCompleted,
			BuyerCountry: "FR",
			Currency:     currency.EUR,
			CompletedAt:  lo.ToPtr(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)),
		}
	}

	tests := []struct {
		name      string
		orderFunc func() domain.Order
		wantError bool
	}{
		{
			name:      "completed order: ok",
			orderFunc: valid,
		},
		{
			name: "renewal order: ok",
			orderFunc: func() domain.Order {
				o := valid()
				o.Status = domain.OrderStatusRenewal
				return o
			},
		},
		{
			name: "no id: malformed",
			orderFunc: func() domain.Order {
				o := valid()
				o.ID = 0
				return o
			},
			wantError: true,
		},
		{
			name: "pending order: malformed",
			orderFunc: func() domain.Order {
				o := valid()
				o.Status = domain.OrderStatusPending
				return o
			},
			wantError: true,
		},
		{
			name: "no completion date: malformed",
			orderFunc: func() domain.Order {
				o := valid()
				o.CompletedAt = nil
				return o
			},
			wantError: true,
		},
		{
			name: "missing buyer country: malformed",
			orderFunc: func() domain.Order {
				o := valid()
				o.BuyerCountry = ""
				return o
			},
			wantError: true,
		},
		{
			name: "lower-case buyer country: malformed",
			orderFunc: func() domain.Order {
				o := valid()
				o.BuyerCountry = "fr"
				return o
			},
			wantError: true,
		},
		{
			name: "no currency: malformed",
			orderFunc: func() domain.Order {
				o := valid()
				o.Currency = currency.Unit{}
				return o
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.orderFunc().Validate()
			if tt.wantError {
				require.ErrorIs(t, err, domain.ErrMalformedOrder)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOrderHasVATNumber(t *testing.T) {
	assert.True(t, domain.Order{BuyerVATNumber: "DE123456789"}.HasVATNumber())
	assert.False(t, domain.Order{BuyerVATNumber: "  "}.HasVATNumber())
	assert.False(t, domain.Order{}.HasVATNumber())
}

func TestValidateCountry(t *testing.T) {
	for _, code := range []string{"DE", "FR", "GR", "US"} {
		assert.NoError(t, domain.ValidateCountry(code), code)
	}

	for _, code := range []string{"", "D", "de", "DEU"} {
		assert.Error(t, domain.ValidateCountry(code), code)
	}
}

func TestToOrderStatus(t *testing.T) {
	status, err := domain.ToOrderStatus("renewal")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusRenewal, status)
	assert.True(t, status.IsCompleted())

	_, err = domain.ToOrderStatus("shipped")
	require.EqualError(t, err, "invalid order status")
}
