package service

import (
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"

	"github.com/shopspring/decimal"
)

// PublicCouponView 面向顾客的优惠券视图
type PublicCouponView struct {
	Code                  string             `json:"code"`
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	Type                  string             `json:"type"`
	DiscountType          string             `json:"discount_type"`
	DiscountValue         models.Money       `json:"discount_value"`
	MinimumCartAmount     models.Money       `json:"minimum_cart_amount"`
	MaximumDiscountAmount models.Money       `json:"maximum_discount_amount"`
	UsageLimitPerCustomer int                `json:"usage_limit_per_customer"`
	ApplicableProducts    models.StringArray `json:"applicable_products"`
	ApplicableCategories  models.StringArray `json:"applicable_categories"`
	ExcludedProducts      models.StringArray `json:"excluded_products"`
	CustomerEligibility   string             `json:"customer_eligibility"`
	ValidFrom             time.Time          `json:"valid_from"`
	ValidUntil            *time.Time         `json:"valid_until"`
	DiscountDisplay       string             `json:"discount_display"`
	ExpiresSoon           bool               `json:"expires_soon"`
	UsagePercentage       int64              `json:"usage_percentage"`
}

// CouponProjector 公开视图投影
type CouponProjector struct {
	expiresSoonWindow time.Duration
}

// NewCouponProjector 创建投影器，expiresSoonDays 非正数时使用默认 7 天
func NewCouponProjector(expiresSoonDays int) *CouponProjector {
	if expiresSoonDays <= 0 {
		expiresSoonDays = constants.CouponExpiresSoonDaysDefault
	}
	return &CouponProjector{expiresSoonWindow: time.Duration(expiresSoonDays) * 24 * time.Hour}
}

// Project 将优惠券投影为公开视图
func (p *CouponProjector) Project(coupon *models.Coupon, now time.Time) PublicCouponView {
	return PublicCouponView{
		Code:                  coupon.Code,
		Name:                  coupon.Name,
		Description:           coupon.Description,
		Type:                  coupon.Kind,
		DiscountType:          coupon.DiscountType,
		DiscountValue:         coupon.DiscountValue,
		MinimumCartAmount:     coupon.MinimumCartAmount,
		MaximumDiscountAmount: coupon.MaximumDiscountAmount,
		UsageLimitPerCustomer: coupon.UsageLimitPerCustomer,
		ApplicableProducts:    nonNilStrings(coupon.ApplicableProducts),
		ApplicableCategories:  nonNilStrings(coupon.ApplicableCategories),
		ExcludedProducts:      nonNilStrings(coupon.ExcludedProducts),
		CustomerEligibility:   coupon.CustomerEligibility,
		ValidFrom:             coupon.ValidFrom,
		ValidUntil:            coupon.ValidUntil,
		DiscountDisplay:       DiscountDisplay(coupon),
		ExpiresSoon:           coupon.ValidUntil != nil && coupon.ValidUntil.Sub(now) < p.expiresSoonWindow,
		UsagePercentage:       usagePercentage(coupon),
	}
}

// ProjectAll 批量投影
func (p *CouponProjector) ProjectAll(coupons []models.Coupon, now time.Time) []PublicCouponView {
	views := make([]PublicCouponView, 0, len(coupons))
	for i := range coupons {
		views = append(views, p.Project(&coupons[i], now))
	}
	return views
}

// DiscountDisplay 生成优惠展示文案
func DiscountDisplay(coupon *models.Coupon) string {
	if coupon == nil {
		return constants.DiscountDisplaySpecialOffer
	}
	switch coupon.DiscountType {
	case constants.DiscountTypePercentage:
		return coupon.DiscountValue.Decimal.String() + "% OFF"
	case constants.DiscountTypeFixedAmount:
		return "$" + formatAmountLabel(coupon.DiscountValue.Decimal) + " OFF"
	case constants.DiscountTypeFreeShipping:
		return constants.DiscountDisplayFreeShipping
	default:
		return constants.DiscountDisplaySpecialOffer
	}
}

func formatAmountLabel(value decimal.Decimal) string {
	if value.Equal(value.Truncate(0)) {
		return value.StringFixed(0)
	}
	return value.StringFixed(models.MoneyScale)
}

func usagePercentage(coupon *models.Coupon) int64 {
	if !coupon.HasUsageLimit() {
		return 0
	}
	ratio := decimal.NewFromInt(int64(coupon.UsageCount)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(coupon.UsageLimit)))
	return ratio.Round(0).IntPart()
}

func nonNilStrings(values models.StringArray) models.StringArray {
	if values == nil {
		return models.StringArray{}
	}
	return values
}
