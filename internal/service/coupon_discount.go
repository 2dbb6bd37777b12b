package service

import (
	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeDiscount 计算优惠金额，结果不超过 amount，也不超过最大优惠金额
func ComputeDiscount(amount models.Money, coupon *models.Coupon) models.Money {
	if coupon == nil || !amount.Decimal.IsPositive() {
		return models.Money{}
	}
	base := amount.Decimal
	var discount decimal.Decimal
	switch coupon.DiscountType {
	case constants.DiscountTypePercentage:
		discount = models.RoundMoney(base.Mul(coupon.DiscountValue.Decimal).Div(hundred))
		if coupon.MaximumDiscountAmount.IsSet() {
			discount = decimal.Min(discount, coupon.MaximumDiscountAmount.Decimal)
		}
	case constants.DiscountTypeFixedAmount:
		discount = decimal.Min(coupon.DiscountValue.Decimal, base)
	default:
		// 包邮券不减免商品金额
		return models.Money{}
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(decimal.Min(discount, base))
}

// BestCoupon 自动选择最优券：仅考虑百分比券，取优惠比例最高者，相同时取最早创建的
func BestCoupon(coupons []models.Coupon) *models.Coupon {
	var best *models.Coupon
	for i := range coupons {
		candidate := &coupons[i]
		if candidate.DiscountType != constants.DiscountTypePercentage {
			continue
		}
		if best == nil {
			best = candidate
			continue
		}
		switch candidate.DiscountValue.Decimal.Cmp(best.DiscountValue.Decimal) {
		case 1:
			best = candidate
		case 0:
			if candidate.CreatedAt.Before(best.CreatedAt) ||
				(candidate.CreatedAt.Equal(best.CreatedAt) && candidate.ID < best.ID) {
				best = candidate
			}
		}
	}
	return best
}
