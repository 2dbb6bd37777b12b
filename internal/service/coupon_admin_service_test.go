package service

import (
	"testing"
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseCouponInput(code string) CouponInput {
	return CouponInput{
		Code:          stringPtr(code),
		Name:          stringPtr("Spring sale"),
		DiscountType:  stringPtr(constants.DiscountTypePercentage),
		DiscountValue: moneyPtr("20"),
	}
}

func TestCouponAdminCreateNormalizesAndDefaults(t *testing.T) {
	f := setupServiceFixture(t)
	input := baseCouponInput("  save20 ")
	input.Name = stringPtr("<b>Spring</b> sale &amp; more")
	input.Description = stringPtr(`<p>Save big</p><script>alert(1)</script>`)
	input.ApplicableCustomerEmails = &[]string{" VIP@Example.com ", "vip@example.com"}

	coupon, err := f.admin.Create(input, 3)
	require.NoError(t, err)
	assert.Equal(t, "SAVE20", coupon.Code)
	assert.Equal(t, "Spring sale & more", coupon.Name)
	assert.Equal(t, "<p>Save big</p>", coupon.Description)
	assert.Equal(t, constants.CouponKindCoupon, coupon.Kind)
	assert.Equal(t, constants.CustomerEligibilityAll, coupon.CustomerEligibility)
	assert.True(t, coupon.IsActive)
	assert.Equal(t, uint(3), coupon.CreatedBy)
	assert.Equal(t, 0, coupon.UsageCount)
	assert.Equal(t, models.StringArray{"vip@example.com"}, coupon.ApplicableCustomerEmails)
}

func TestCouponAdminCreateRejectsDuplicateCodeIgnoringCase(t *testing.T) {
	f := setupServiceFixture(t)
	_, err := f.admin.Create(baseCouponInput("SAVE20"), 1)
	require.NoError(t, err)

	_, err = f.admin.Create(baseCouponInput("save20"), 1)
	require.ErrorIs(t, err, ErrCouponCodeExists)
}

// staleCodeCheckRepo 模拟两个管理员同时通过优惠码查重的情形
type staleCodeCheckRepo struct {
	*repository.GormCouponRepository
}

func (r staleCodeCheckRepo) CountByCode(string, uint) (int64, error) {
	return 0, nil
}

func TestCouponAdminConcurrentDuplicateCodeIsConflict(t *testing.T) {
	f := setupServiceFixture(t)
	admin := NewCouponAdminService(staleCodeCheckRepo{f.couponRepo}, f.usageRepo)

	_, err := admin.Create(baseCouponInput("RACE"), 1)
	require.NoError(t, err)
	_, err = admin.Create(baseCouponInput("race"), 2)
	require.ErrorIs(t, err, ErrCouponCodeExists)

	other, err := admin.Create(baseCouponInput("OTHER"), 1)
	require.NoError(t, err)
	_, err = admin.Update(other.ID, CouponInput{Code: stringPtr("RACE")})
	require.ErrorIs(t, err, ErrCouponCodeExists)
}

func TestCouponAdminCreateValidation(t *testing.T) {
	f := setupServiceFixture(t)
	now := time.Now()
	before := now.Add(-time.Hour)

	tests := []struct {
		name    string
		mutate  func(*CouponInput)
		wantKey string
	}{
		{"missing_code", func(in *CouponInput) { in.Code = stringPtr(" ") }, "error.coupon_code_required"},
		{"missing_name", func(in *CouponInput) { in.Name = stringPtr("<i></i>") }, "error.coupon_name_required"},
		{"missing_value", func(in *CouponInput) { in.DiscountValue = nil }, "error.coupon_value_required"},
		{"negative_value", func(in *CouponInput) { in.DiscountValue = moneyPtr("-1") }, "error.coupon_value_negative"},
		{"percentage_over_100", func(in *CouponInput) { in.DiscountValue = moneyPtr("100.01") }, "error.coupon_percentage_max"},
		{"unknown_discount_type", func(in *CouponInput) { in.DiscountType = stringPtr("bogo") }, "error.coupon_discount_type"},
		{"unknown_kind", func(in *CouponInput) { in.Kind = stringPtr("voucher") }, "error.coupon_kind_invalid"},
		{"negative_minimum", func(in *CouponInput) { in.MinimumCartAmount = moneyPtr("-5") }, "error.coupon_amount_negative"},
		{"negative_limit", func(in *CouponInput) { in.UsageLimit = intPtr(-1) }, "error.coupon_limit_negative"},
		{"unknown_eligibility", func(in *CouponInput) { in.CustomerEligibility = stringPtr("friends") }, "error.coupon_eligibility"},
		{"window_reversed", func(in *CouponInput) {
			in.ValidFrom = &now
			in.ValidUntil = &before
		}, "error.coupon_window"},
		{"bad_allow_list_email", func(in *CouponInput) { in.ApplicableCustomerEmails = &[]string{"not-an-email"} }, "error.coupon_email_invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseCouponInput("BOUNDS")
			tt.mutate(&input)
			_, err := f.admin.Create(input, 1)
			require.ErrorIs(t, err, ErrCouponInvalid)
			var keyed interface{ Key() string }
			require.ErrorAs(t, err, &keyed)
			assert.Equal(t, tt.wantKey, keyed.Key())
		})
	}

	percentFull := baseCouponInput("FULL")
	percentFull.DiscountValue = moneyPtr("100")
	_, err := f.admin.Create(percentFull, 1)
	require.NoError(t, err)
}

func TestCouponAdminUpdate(t *testing.T) {
	f := setupServiceFixture(t)
	created, err := f.admin.Create(baseCouponInput("SPRING"), 1)
	require.NoError(t, err)
	_, err = f.admin.Create(baseCouponInput("SUMMER"), 1)
	require.NoError(t, err)
	_, err = f.ledger.Redeem(RedeemInput{CouponID: created.ID, CustomerEmail: "a@example.com", OrderID: 1})
	require.NoError(t, err)
	_, err = f.ledger.Redeem(RedeemInput{CouponID: created.ID, CustomerEmail: "b@example.com", OrderID: 2})
	require.NoError(t, err)

	updated, err := f.admin.Update(created.ID, CouponInput{
		Name:          stringPtr("Spring v2"),
		DiscountValue: moneyPtr("25"),
		UsageLimit:    intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring v2", updated.Name)
	assert.Equal(t, "25.00", updated.DiscountValue.String())
	assert.Equal(t, 5, updated.UsageLimit)
	assert.Equal(t, 2, updated.UsageCount)
	assert.Equal(t, "SPRING", updated.Code)

	_, err = f.admin.Update(created.ID, CouponInput{UsageLimit: intPtr(1)})
	require.ErrorIs(t, err, ErrCouponInvalid)

	_, err = f.admin.Update(created.ID, CouponInput{Code: stringPtr("summer")})
	require.ErrorIs(t, err, ErrCouponCodeExists)

	_, err = f.admin.Update(9999, CouponInput{Name: stringPtr("x")})
	require.ErrorIs(t, err, ErrCouponNotFound)

	future := time.Now().Add(24 * time.Hour)
	withEnd, err := f.admin.Update(created.ID, CouponInput{ValidUntil: &future})
	require.NoError(t, err)
	require.NotNil(t, withEnd.ValidUntil)
	cleared, err := f.admin.Update(created.ID, CouponInput{ClearValidUntil: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.ValidUntil)
}

func TestCouponAdminDeleteKeepsUsages(t *testing.T) {
	f := setupServiceFixture(t)
	created, err := f.admin.Create(baseCouponInput("BYE"), 1)
	require.NoError(t, err)
	_, err = f.ledger.Redeem(RedeemInput{CouponID: created.ID, CustomerEmail: "a@example.com", OrderID: 7})
	require.NoError(t, err)

	code, err := f.admin.Delete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "BYE", code)

	_, err = f.admin.Get(created.ID)
	require.ErrorIs(t, err, ErrCouponNotFound)
	_, err = f.admin.Delete(created.ID)
	require.ErrorIs(t, err, ErrCouponNotFound)

	usages, total, err := f.admin.ListUsages(repository.CouponUsageListFilter{CouponID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "BYE", usages[0].CouponCode)
}

func TestCouponAdminListByStatus(t *testing.T) {
	f := setupServiceFixture(t)
	past := time.Now().Add(-time.Minute)
	f.createCoupon(t, "LIVE", nil)
	f.createCoupon(t, "PAUSED", func(c *models.Coupon) { c.IsActive = false })
	f.createCoupon(t, "ENDED", func(c *models.Coupon) {
		c.ValidFrom = time.Now().Add(-48 * time.Hour)
		c.ValidUntil = &past
	})

	active, total, err := f.admin.List(repository.CouponListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "LIVE", active[0].Code)

	expired, _, err := f.admin.List(repository.CouponListFilter{Status: "expired"})
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "ENDED", expired[0].Code)
}
