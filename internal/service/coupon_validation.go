package service

import (
	"html"
	"strings"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

const couponCodeMaxLength = 64

var (
	plainTextPolicy = bluemonday.StrictPolicy()
	richTextPolicy  = bluemonday.UGCPolicy()
)

// couponValidationError 携带具体越界项的校验错误
type couponValidationError struct {
	key  string
	args []interface{}
}

func (e couponValidationError) Error() string {
	return e.key
}

func (e couponValidationError) Is(target error) bool {
	return target == ErrCouponInvalid
}

func (e couponValidationError) Key() string {
	return e.key
}

func (e couponValidationError) Args() []interface{} {
	return e.args
}

func invalidCoupon(key string, args ...interface{}) error {
	return couponValidationError{key: key, args: args}
}

// validateCoupon 校验优惠券定义的取值范围
func validateCoupon(coupon *models.Coupon) error {
	if coupon.Code == "" || len(coupon.Code) > couponCodeMaxLength {
		return invalidCoupon("error.coupon_code_required")
	}
	if coupon.Name == "" {
		return invalidCoupon("error.coupon_name_required")
	}
	switch coupon.Kind {
	case constants.CouponKindCoupon, constants.CouponKindPromotion:
	default:
		return invalidCoupon("error.coupon_kind_invalid")
	}
	switch coupon.DiscountType {
	case constants.DiscountTypePercentage, constants.DiscountTypeFixedAmount, constants.DiscountTypeFreeShipping:
	default:
		return invalidCoupon("error.coupon_discount_type")
	}
	if coupon.DiscountValue.Decimal.IsNegative() {
		return invalidCoupon("error.coupon_value_negative")
	}
	if coupon.DiscountType == constants.DiscountTypePercentage && coupon.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return invalidCoupon("error.coupon_percentage_max")
	}
	if coupon.MinimumCartAmount.Decimal.IsNegative() {
		return invalidCoupon("error.coupon_amount_negative", "minimum_cart_amount")
	}
	if coupon.MaximumDiscountAmount.Decimal.IsNegative() {
		return invalidCoupon("error.coupon_amount_negative", "maximum_discount_amount")
	}
	if coupon.UsageLimit < 0 {
		return invalidCoupon("error.coupon_limit_negative", "usage_limit")
	}
	if coupon.UsageLimitPerCustomer < 0 {
		return invalidCoupon("error.coupon_limit_negative", "usage_limit_per_customer")
	}
	if coupon.HasUsageLimit() && coupon.UsageCount > coupon.UsageLimit {
		return invalidCoupon("error.coupon_usage_over_limit", coupon.UsageCount)
	}
	switch coupon.CustomerEligibility {
	case constants.CustomerEligibilityAll, constants.CustomerEligibilityNew,
		constants.CustomerEligibilityReturning, constants.CustomerEligibilityVIP:
	default:
		return invalidCoupon("error.coupon_eligibility")
	}
	if coupon.ValidUntil != nil && coupon.ValidUntil.Before(coupon.ValidFrom) {
		return invalidCoupon("error.coupon_window")
	}
	for _, email := range coupon.ApplicableCustomerEmails {
		if _, err := validateEmail(email); err != nil {
			return invalidCoupon("error.coupon_email_invalid", email)
		}
	}
	return nil
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func sanitizePlainText(value string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(value)))
}

func sanitizeRichText(value string) string {
	return strings.TrimSpace(richTextPolicy.Sanitize(value))
}
