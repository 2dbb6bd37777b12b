package service

import (
	"testing"
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		coupon *models.Coupon
		want   string
	}{
		{
			name:   "percentage_capped_by_maximum",
			amount: "100",
			coupon: &models.Coupon{
				DiscountType:          constants.DiscountTypePercentage,
				DiscountValue:         models.MustMoney("20"),
				MaximumDiscountAmount: models.MustMoney("15"),
			},
			want: "15.00",
		},
		{
			name:   "percentage_below_cap",
			amount: "50",
			coupon: &models.Coupon{
				DiscountType:          constants.DiscountTypePercentage,
				DiscountValue:         models.MustMoney("20"),
				MaximumDiscountAmount: models.MustMoney("15"),
			},
			want: "10.00",
		},
		{
			name:   "percentage_rounds_half_up",
			amount: "19.99",
			coupon: &models.Coupon{
				DiscountType:  constants.DiscountTypePercentage,
				DiscountValue: models.MustMoney("12.5"),
			},
			want: "2.50",
		},
		{
			name:   "fixed_amount_limited_by_cart",
			amount: "5",
			coupon: &models.Coupon{
				DiscountType:  constants.DiscountTypeFixedAmount,
				DiscountValue: models.MustMoney("10"),
			},
			want: "5.00",
		},
		{
			name:   "fixed_amount",
			amount: "42.50",
			coupon: &models.Coupon{
				DiscountType:  constants.DiscountTypeFixedAmount,
				DiscountValue: models.MustMoney("10"),
			},
			want: "10.00",
		},
		{
			name:   "free_shipping_has_no_item_discount",
			amount: "80",
			coupon: &models.Coupon{
				DiscountType:  constants.DiscountTypeFreeShipping,
				DiscountValue: models.MustMoney("0"),
			},
			want: "0.00",
		},
		{
			name:   "hundred_percent",
			amount: "37.21",
			coupon: &models.Coupon{
				DiscountType:  constants.DiscountTypePercentage,
				DiscountValue: models.MustMoney("100"),
			},
			want: "37.21",
		},
		{
			name:   "nil_coupon",
			amount: "10",
			coupon: nil,
			want:   "0.00",
		},
		{
			name:   "zero_amount",
			amount: "0",
			coupon: &models.Coupon{
				DiscountType:  constants.DiscountTypeFixedAmount,
				DiscountValue: models.MustMoney("10"),
			},
			want: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscount(models.MustMoney(tt.amount), tt.coupon)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestComputeDiscountNeverExceedsAmount(t *testing.T) {
	amounts := []string{"0.01", "0.99", "1", "9.99", "15", "99.95", "1000"}
	coupons := []*models.Coupon{
		{DiscountType: constants.DiscountTypePercentage, DiscountValue: models.MustMoney("33.33")},
		{DiscountType: constants.DiscountTypePercentage, DiscountValue: models.MustMoney("100")},
		{DiscountType: constants.DiscountTypePercentage, DiscountValue: models.MustMoney("50"), MaximumDiscountAmount: models.MustMoney("3")},
		{DiscountType: constants.DiscountTypeFixedAmount, DiscountValue: models.MustMoney("12")},
		{DiscountType: constants.DiscountTypeFixedAmount, DiscountValue: models.MustMoney("0.50")},
	}
	for _, raw := range amounts {
		amount := models.MustMoney(raw)
		for _, coupon := range coupons {
			got := ComputeDiscount(amount, coupon)
			require.False(t, got.Decimal.IsNegative(), "amount=%s coupon=%+v", raw, coupon)
			require.True(t, got.Decimal.LessThanOrEqual(amount.Decimal), "amount=%s got=%s", raw, got.String())
			if coupon.MaximumDiscountAmount.IsSet() {
				require.True(t, got.Decimal.LessThanOrEqual(coupon.MaximumDiscountAmount.Decimal))
			}
			require.True(t, got.Decimal.Equal(models.RoundMoney(got.Decimal)))
		}
	}
}

func TestBestCoupon(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	coupons := []models.Coupon{
		{ID: 1, Code: "FIXED50", DiscountType: constants.DiscountTypeFixedAmount, DiscountValue: models.MustMoney("50"), CreatedAt: base},
		{ID: 2, Code: "TEN", DiscountType: constants.DiscountTypePercentage, DiscountValue: models.MustMoney("10"), CreatedAt: base},
		{ID: 3, Code: "LATE25", DiscountType: constants.DiscountTypePercentage, DiscountValue: models.MustMoney("25"), CreatedAt: base.Add(time.Hour)},
		{ID: 4, Code: "EARLY25", DiscountType: constants.DiscountTypePercentage, DiscountValue: models.MustMoney("25"), CreatedAt: base},
		{ID: 5, Code: "SHIP", DiscountType: constants.DiscountTypeFreeShipping, CreatedAt: base},
	}

	best := BestCoupon(coupons)
	require.NotNil(t, best)
	assert.Equal(t, "EARLY25", best.Code)

	onlyFixed := []models.Coupon{coupons[0], coupons[4]}
	assert.Nil(t, BestCoupon(onlyFixed))
	assert.Nil(t, BestCoupon(nil))

	sameTime := []models.Coupon{
		{ID: 9, Code: "B", DiscountType: constants.DiscountTypePercentage, DiscountValue: models.MustMoney("15"), CreatedAt: base},
		{ID: 7, Code: "A", DiscountType: constants.DiscountTypePercentage, DiscountValue: models.MustMoney("15"), CreatedAt: base},
	}
	assert.Equal(t, "A", BestCoupon(sameTime).Code)
}
