package service

import (
	"context"
	"testing"
	"time"

	"github.com/templatehub/storefront/internal/config"
	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publicCodes(views []PublicCouponView) []string {
	codes := make([]string, 0, len(views))
	for _, view := range views {
		codes = append(codes, view.Code)
	}
	return codes
}

func TestListPublicSortsAndFilters(t *testing.T) {
	f := setupServiceFixture(t)
	past := time.Now().Add(-time.Minute)
	f.createCoupon(t, "TEN", nil)
	f.createCoupon(t, "THIRTY", func(c *models.Coupon) { c.DiscountValue = models.MustMoney("30") })
	f.createCoupon(t, "FIVEOFF", func(c *models.Coupon) {
		c.DiscountType = constants.DiscountTypeFixedAmount
		c.DiscountValue = models.MustMoney("5")
	})
	f.createCoupon(t, "EXPIRED", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("50")
		c.ValidFrom = time.Now().Add(-48 * time.Hour)
		c.ValidUntil = &past
	})
	f.createCoupon(t, "DISABLED", func(c *models.Coupon) { c.IsActive = false })
	f.createCoupon(t, "VIP40", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("40")
		c.CustomerEligibility = constants.CustomerEligibilityVIP
	})
	f.createCoupon(t, "RETURN15", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("15")
		c.CustomerEligibility = constants.CustomerEligibilityReturning
	})

	anonymous, err := f.coupons.ListPublic(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"THIRTY", "TEN", "FIVEOFF"}, publicCodes(anonymous))

	_, err = f.customers.SetVIP("vip@example.com", true)
	require.NoError(t, err)
	vip, err := f.coupons.ListPublic(context.Background(), "VIP@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"VIP40", "THIRTY", "TEN", "FIVEOFF"}, publicCodes(vip))
}

func TestListPublicReturningCustomer(t *testing.T) {
	f := setupServiceFixture(t)
	f.createCoupon(t, "WELCOME", func(c *models.Coupon) { c.CustomerEligibility = constants.CustomerEligibilityNew })
	f.createCoupon(t, "RETURN15", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("15")
		c.CustomerEligibility = constants.CustomerEligibilityReturning
	})
	require.NoError(t, f.db.Create(&models.Order{
		OrderNo:       "TS-PAID-1",
		CustomerEmail: "back@example.com",
		Status:        constants.OrderStatusPaid,
		Currency:      "USD",
	}).Error)

	views, err := f.coupons.ListPublic(context.Background(), "back@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"RETURN15"}, publicCodes(views))

	views, err = f.coupons.ListPublic(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"WELCOME"}, publicCodes(views))
}

func TestApplyCoupon(t *testing.T) {
	f := setupServiceFixture(t)
	f.createCoupon(t, "SAVE20", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("20")
		c.MaximumDiscountAmount = models.MustMoney("15")
	})
	f.createCoupon(t, "MIN50", func(c *models.Coupon) { c.MinimumCartAmount = models.MustMoney("50") })
	f.createCoupon(t, "SHIP", func(c *models.Coupon) {
		c.DiscountType = constants.DiscountTypeFreeShipping
		c.DiscountValue = models.MustMoney("0")
	})

	result, err := f.coupons.ApplyCoupon(ApplyCouponInput{Code: "save20", Cart: singleLineCart("landing-kit", "landing", "100", 1)})
	require.NoError(t, err)
	assert.Equal(t, "SAVE20", result.Code)
	assert.Equal(t, "15.00", result.DiscountAmount.String())
	assert.Equal(t, "85.00", result.Total.String())
	assert.Equal(t, "20% OFF", result.DiscountDisplay)

	_, err = f.coupons.ApplyCoupon(ApplyCouponInput{Code: "MIN50", Cart: singleLineCart("landing-kit", "landing", "49.99", 1)})
	require.ErrorIs(t, err, ErrCouponBelowMinimum)

	_, err = f.coupons.ApplyCoupon(ApplyCouponInput{Code: "NOPE", Cart: singleLineCart("landing-kit", "landing", "10", 1)})
	require.ErrorIs(t, err, ErrCouponNotFound)

	ship, err := f.coupons.ApplyCoupon(ApplyCouponInput{Code: "SHIP", Cart: singleLineCart("landing-kit", "landing", "10", 2)})
	require.NoError(t, err)
	assert.True(t, ship.FreeShipping)
	assert.Equal(t, "0.00", ship.DiscountAmount.String())
	assert.Equal(t, "20.00", ship.Total.String())
}

func TestApplyCouponPerCustomerLimit(t *testing.T) {
	f := setupServiceFixture(t)
	coupon := f.createCoupon(t, "ONCE", func(c *models.Coupon) { c.UsageLimitPerCustomer = 1 })
	_, err := f.ledger.Redeem(RedeemInput{CouponID: coupon.ID, CustomerEmail: "a@example.com", OrderID: 1})
	require.NoError(t, err)

	cart := singleLineCart("landing-kit", "landing", "10", 1)
	_, err = f.coupons.ApplyCoupon(ApplyCouponInput{Code: "ONCE", CustomerEmail: "a@example.com", Cart: cart})
	require.ErrorIs(t, err, ErrCouponLimitExceeded)

	_, err = f.coupons.ApplyCoupon(ApplyCouponInput{Code: "ONCE", CustomerEmail: "b@example.com", Cart: cart})
	require.NoError(t, err)
}

func TestAutoApplyPicksBestPercentage(t *testing.T) {
	f := setupServiceFixture(t)
	f.createCoupon(t, "FLAT30", func(c *models.Coupon) {
		c.DiscountType = constants.DiscountTypeFixedAmount
		c.DiscountValue = models.MustMoney("30")
	})
	f.createCoupon(t, "TEN", nil)
	f.createCoupon(t, "BIG25", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("25")
		c.MinimumCartAmount = models.MustMoney("500")
	})
	f.createCoupon(t, "FIFTEEN", func(c *models.Coupon) { c.DiscountValue = models.MustMoney("15") })

	result, err := f.coupons.AutoApply("", singleLineCart("landing-kit", "landing", "40", 1))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "FIFTEEN", result.Code)
	assert.Equal(t, "6.00", result.DiscountAmount.String())

	empty := setupServiceFixture(t)
	none, err := empty.coupons.AutoApply("", singleLineCart("landing-kit", "landing", "40", 1))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestListPublicLimitCountsOnlyEligibleCoupons(t *testing.T) {
	f := setupServiceFixture(t)
	limited := NewCouponService(f.couponRepo, f.usageRepo, f.customers, config.CouponConfig{
		ExpiresSoonDays: 7,
		PublicListLimit: 2,
	})
	f.createCoupon(t, "VIP50", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("50")
		c.CustomerEligibility = constants.CustomerEligibilityVIP
	})
	f.createCoupon(t, "VIP40", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("40")
		c.CustomerEligibility = constants.CustomerEligibilityVIP
	})
	f.createCoupon(t, "ALL10", nil)
	f.createCoupon(t, "ALL5", func(c *models.Coupon) { c.DiscountValue = models.MustMoney("5") })
	f.createCoupon(t, "ALL3", func(c *models.Coupon) { c.DiscountValue = models.MustMoney("3") })

	anonymous, err := limited.ListPublic(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ALL10", "ALL5"}, publicCodes(anonymous))

	_, err = f.customers.SetVIP("vip@example.com", true)
	require.NoError(t, err)
	vip, err := limited.ListPublic(context.Background(), "vip@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"VIP50", "VIP40"}, publicCodes(vip))
}

func TestAutoApplyConsidersAllowListedCoupons(t *testing.T) {
	f := setupServiceFixture(t)
	f.createCoupon(t, "TEN", nil)
	f.createCoupon(t, "FRIENDS40", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("40")
		c.ApplicableCustomerEmails = models.StringArray{"friend@example.com"}
	})
	cart := singleLineCart("landing-kit", "landing", "50", 1)

	named, err := f.coupons.AutoApply("Friend@Example.com", cart)
	require.NoError(t, err)
	require.NotNil(t, named)
	assert.Equal(t, "FRIENDS40", named.Code)
	assert.Equal(t, "20.00", named.DiscountAmount.String())

	other, err := f.coupons.AutoApply("stranger@example.com", cart)
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, "TEN", other.Code)

	anonymous, err := f.coupons.AutoApply("", cart)
	require.NoError(t, err)
	require.NotNil(t, anonymous)
	assert.Equal(t, "TEN", anonymous.Code)

	// 指定客户名单的券不出现在公开列表中
	views, err := f.coupons.ListPublic(context.Background(), "friend@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"TEN"}, publicCodes(views))
}
