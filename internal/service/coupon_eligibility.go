package service

import (
	"strings"
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"

	"github.com/shopspring/decimal"
)

// CartLine 结算中的一行商品
type CartLine struct {
	ProductSlug string       `json:"product_slug"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	UnitPrice   models.Money `json:"unit_price"`
	Quantity    int          `json:"quantity"`
	LineTotal   models.Money `json:"line_total"`
}

// Cart 结算购物车快照
type Cart struct {
	Lines    []CartLine   `json:"lines"`
	Subtotal models.Money `json:"subtotal"`
}

// NewCart 根据行计算小计
func NewCart(lines []CartLine) *Cart {
	subtotal := decimal.Zero
	for i := range lines {
		total := lines[i].UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		lines[i].LineTotal = models.NewMoneyFromDecimal(total)
		subtotal = subtotal.Add(lines[i].LineTotal.Decimal)
	}
	return &Cart{Lines: lines, Subtotal: models.NewMoneyFromDecimal(subtotal)}
}

// CustomerProfile 客户画像，用于资格判断
type CustomerProfile struct {
	Email      string
	PaidOrders int64
	IsVIP      bool
}

// EligibilityContext 资格判断上下文
// Customer 为 nil 表示匿名访问，Cart 为 nil 表示列表场景（跳过购物车相关判断）。
type EligibilityContext struct {
	Now      time.Time
	Customer *CustomerProfile
	Cart     *Cart
}

// FilterEligible 过滤出当前可用的优惠券，不可用的直接剔除
func FilterEligible(coupons []models.Coupon, ctx EligibilityContext) []models.Coupon {
	result := make([]models.Coupon, 0, len(coupons))
	for i := range coupons {
		if checkEligibility(&coupons[i], ctx) == nil {
			result = append(result, coupons[i])
		}
	}
	return result
}

// checkEligibility 依次校验资格，遇到第一个不满足的条件即返回
func checkEligibility(coupon *models.Coupon, ctx EligibilityContext) error {
	if coupon == nil {
		return ErrCouponNotFound
	}
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}
	if !coupon.IsActive {
		return ErrCouponNotEligible
	}
	if coupon.ValidFrom.After(now) {
		return ErrCouponNotEligible
	}
	if coupon.ValidUntil != nil && !coupon.ValidUntil.After(now) {
		return ErrCouponNotEligible
	}
	if coupon.HasUsageLimit() && coupon.UsageCount >= coupon.UsageLimit {
		return ErrCouponLimitExceeded
	}
	if !matchesAllowList(coupon, ctx.Customer) {
		return ErrCouponNotEligible
	}
	if !matchesCustomerEligibility(coupon.CustomerEligibility, ctx.Customer) {
		return ErrCouponNotEligible
	}
	if ctx.Cart == nil {
		return nil
	}
	if coupon.MinimumCartAmount.IsSet() && ctx.Cart.Subtotal.Decimal.LessThan(coupon.MinimumCartAmount.Decimal) {
		return ErrCouponBelowMinimum
	}
	if !matchesCartScope(coupon, ctx.Cart) {
		return ErrCouponNotEligible
	}
	return nil
}

func matchesAllowList(coupon *models.Coupon, customer *CustomerProfile) bool {
	if len(coupon.ApplicableCustomerEmails) == 0 {
		return true
	}
	if customer == nil {
		return false
	}
	return coupon.ApplicableCustomerEmails.ContainsFold(customer.Email)
}

// matchesCustomerEligibility 匿名访问按新客处理
func matchesCustomerEligibility(eligibility string, customer *CustomerProfile) bool {
	switch strings.TrimSpace(eligibility) {
	case "", constants.CustomerEligibilityAll:
		return true
	case constants.CustomerEligibilityNew:
		return customer == nil || customer.PaidOrders == 0
	case constants.CustomerEligibilityReturning:
		return customer != nil && customer.PaidOrders > 0
	case constants.CustomerEligibilityVIP:
		return customer != nil && customer.IsVIP
	default:
		return false
	}
}

func hasInclusionScope(coupon *models.Coupon) bool {
	return len(coupon.ApplicableProducts) > 0 || len(coupon.ApplicableCategories) > 0
}

func lineInScope(coupon *models.Coupon, line CartLine) bool {
	return coupon.ApplicableProducts.ContainsFold(line.ProductSlug) ||
		coupon.ApplicableCategories.ContainsFold(line.Category)
}

func matchesCartScope(coupon *models.Coupon, cart *Cart) bool {
	if len(coupon.ExcludedProducts) > 0 {
		for _, line := range cart.Lines {
			if coupon.ExcludedProducts.ContainsFold(line.ProductSlug) {
				return false
			}
		}
	}
	if !hasInclusionScope(coupon) {
		return true
	}
	for _, line := range cart.Lines {
		if lineInScope(coupon, line) {
			return true
		}
	}
	return false
}

// eligibleAmount 计算优惠适用的金额：设置了适用范围时只统计命中的行
func eligibleAmount(coupon *models.Coupon, cart *Cart) models.Money {
	if cart == nil {
		return models.Money{}
	}
	if coupon == nil || !hasInclusionScope(coupon) {
		return cart.Subtotal
	}
	total := decimal.Zero
	for _, line := range cart.Lines {
		if lineInScope(coupon, line) {
			total = total.Add(line.LineTotal.Decimal)
		}
	}
	return models.NewMoneyFromDecimal(total)
}
