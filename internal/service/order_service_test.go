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

func TestMergeCheckoutItems(t *testing.T) {
	merged, err := mergeCheckoutItems([]CheckoutItem{
		{ProductSlug: "Landing-Kit", Quantity: 1},
		{ProductSlug: "blog-pro", Quantity: 2},
		{ProductSlug: " landing-kit ", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []CheckoutItem{
		{ProductSlug: "landing-kit", Quantity: 4},
		{ProductSlug: "blog-pro", Quantity: 2},
	}, merged)

	_, err = mergeCheckoutItems(nil)
	require.ErrorIs(t, err, ErrInvalidOrderItem)
	_, err = mergeCheckoutItems([]CheckoutItem{{ProductSlug: "a", Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidOrderItem)
	_, err = mergeCheckoutItems([]CheckoutItem{
		{ProductSlug: "a", Quantity: constants.OrderMaxItemQuantity},
		{ProductSlug: "a", Quantity: 1},
	})
	require.ErrorIs(t, err, ErrInvalidOrderItem)
}

func TestOrderPreviewAppliesCoupon(t *testing.T) {
	f := setupServiceFixture(t)
	f.createProduct(t, "landing-kit", "landing", "60")
	f.createProduct(t, "blog-pro", "blog", "40")
	f.createCoupon(t, "SAVE20", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("20")
		c.MaximumDiscountAmount = models.MustMoney("15")
	})
	f.createCoupon(t, "BLOG50", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("50")
		c.ApplicableCategories = models.StringArray{"blog"}
	})

	preview, err := f.orders.Preview(CheckoutInput{
		Items:      []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}, {ProductSlug: "blog-pro", Quantity: 1}},
		CouponCode: "save20",
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", preview.SubtotalAmount.String())
	assert.Equal(t, "15.00", preview.DiscountAmount.String())
	assert.Equal(t, "85.00", preview.TotalAmount.String())
	assert.Equal(t, "USD", preview.Currency)
	require.NotNil(t, preview.Coupon)
	assert.Equal(t, "SAVE20", preview.Coupon.Code)

	scoped, err := f.orders.Preview(CheckoutInput{
		Items:      []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}, {ProductSlug: "blog-pro", Quantity: 1}},
		CouponCode: "BLOG50",
	})
	require.NoError(t, err)
	assert.Equal(t, "20.00", scoped.DiscountAmount.String())
	assert.Equal(t, "80.00", scoped.TotalAmount.String())

	plain, err := f.orders.Preview(CheckoutInput{Items: []CheckoutItem{{ProductSlug: "blog-pro", Quantity: 2}}})
	require.NoError(t, err)
	assert.Nil(t, plain.Coupon)
	assert.Equal(t, "80.00", plain.TotalAmount.String())

	auto, err := f.orders.Preview(CheckoutInput{Items: []CheckoutItem{{ProductSlug: "blog-pro", Quantity: 1}}, AutoCoupon: true})
	require.NoError(t, err)
	require.NotNil(t, auto.Coupon)
	assert.Equal(t, "BLOG50", auto.Coupon.Code)

	_, err = f.orders.Preview(CheckoutInput{Items: []CheckoutItem{{ProductSlug: "missing", Quantity: 1}}})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestOrderCreateRequiresEmail(t *testing.T) {
	f := setupServiceFixture(t)
	f.createProduct(t, "landing-kit", "landing", "60")

	_, err := f.orders.Create(CheckoutInput{Items: []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}}})
	require.ErrorIs(t, err, ErrOrderEmailRequired)

	_, err = f.orders.Create(CheckoutInput{CustomerEmail: "nope", Items: []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}}})
	require.ErrorIs(t, err, ErrCustomerEmailInvalid)
}

func TestOrderMarkPaidRedeemsOnce(t *testing.T) {
	f := setupServiceFixture(t)
	f.createProduct(t, "landing-kit", "landing", "60")
	coupon := f.createCoupon(t, "SAVE20", func(c *models.Coupon) {
		c.DiscountValue = models.MustMoney("20")
		c.UsageLimit = 10
	})

	order, err := f.orders.Create(CheckoutInput{
		CustomerEmail: "Buyer@Example.com",
		Items:         []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}},
		CouponCode:    "SAVE20",
		Locale:        "zh-CN",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPendingPayment, order.Status)
	assert.Equal(t, "buyer@example.com", order.CustomerEmail)
	assert.Equal(t, "12.00", order.DiscountAmount.String())
	assert.Equal(t, "48.00", order.TotalAmount.String())
	require.NotNil(t, order.ExpiresAt)
	require.Len(t, order.Items, 1)
	// 下单不核销
	assert.Equal(t, 0, f.reloadCoupon(t, coupon.ID).UsageCount)

	paid, err := f.orders.MarkPaid(order.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, "12.00", paid.DiscountAmount.String())
	assert.Equal(t, 1, f.reloadCoupon(t, coupon.ID).UsageCount)

	_, err = f.orders.MarkPaid(order.OrderNo)
	require.ErrorIs(t, err, ErrOrderStatusInvalid)
	assert.Equal(t, 1, f.reloadCoupon(t, coupon.ID).UsageCount)

	usages, err := f.usageRepo.ListByOrderID(order.ID)
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, "12.00", usages[0].DiscountAmount.String())

	_, err = f.orders.MarkPaid("TS-UNKNOWN")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderMarkPaidDropsDiscountWhenCouponUsedUp(t *testing.T) {
	f := setupServiceFixture(t)
	f.createProduct(t, "landing-kit", "landing", "50")
	coupon := f.createCoupon(t, "LAST1", func(c *models.Coupon) {
		c.DiscountType = constants.DiscountTypeFixedAmount
		c.DiscountValue = models.MustMoney("10")
		c.UsageLimit = 1
	})

	first, err := f.orders.Create(CheckoutInput{CustomerEmail: "a@example.com", Items: []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}}, CouponCode: "LAST1"})
	require.NoError(t, err)
	second, err := f.orders.Create(CheckoutInput{CustomerEmail: "b@example.com", Items: []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}}, CouponCode: "LAST1"})
	require.NoError(t, err)

	_, err = f.orders.MarkPaid(first.OrderNo)
	require.NoError(t, err)

	paid, err := f.orders.MarkPaid(second.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaid, paid.Status)
	assert.Nil(t, paid.CouponID)
	assert.Empty(t, paid.CouponCode)
	assert.Equal(t, "0.00", paid.DiscountAmount.String())
	assert.Equal(t, "50.00", paid.TotalAmount.String())
	assert.Equal(t, 1, f.reloadCoupon(t, coupon.ID).UsageCount)
}

func TestCancelExpiredOrder(t *testing.T) {
	f := setupServiceFixture(t)
	f.createProduct(t, "landing-kit", "landing", "50")
	order, err := f.orders.Create(CheckoutInput{CustomerEmail: "a@example.com", Items: []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}}})
	require.NoError(t, err)

	kept, err := f.orders.CancelExpiredOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPendingPayment, kept.Status)

	f.orders.now = func() time.Time { return time.Now().Add(time.Hour) }
	canceled, err := f.orders.CancelExpiredOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusCanceled, canceled.Status)

	_, err = f.orders.MarkPaid(order.OrderNo)
	require.ErrorIs(t, err, ErrOrderStatusInvalid)

	list, total, err := f.orders.ListForAdmin(repository.OrderListFilter{Status: constants.OrderStatusCanceled})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, order.OrderNo, list[0].OrderNo)
}

func TestCancelExpiredOrdersSweep(t *testing.T) {
	f := setupServiceFixture(t)
	f.createProduct(t, "landing-kit", "landing", "50")
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := f.orders.Create(CheckoutInput{CustomerEmail: email, Items: []CheckoutItem{{ProductSlug: "landing-kit", Quantity: 1}}})
		require.NoError(t, err)
	}

	canceled, err := f.orders.CancelExpiredOrders(10)
	require.NoError(t, err)
	assert.Zero(t, canceled)

	f.orders.now = func() time.Time { return time.Now().Add(time.Hour) }
	canceled, err = f.orders.CancelExpiredOrders(1)
	require.NoError(t, err)
	assert.Equal(t, 1, canceled)
	canceled, err = f.orders.CancelExpiredOrders(10)
	require.NoError(t, err)
	assert.Equal(t, 1, canceled)
}
