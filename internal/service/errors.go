package service

import "github.com/go-faster/errors"

// 通用错误
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// 优惠券错误
var (
	ErrCouponInvalid       = errors.New("coupon invalid")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponCodeExists    = errors.New("coupon code already exists")
	ErrCouponNotEligible   = errors.New("coupon not eligible")
	ErrCouponLimitExceeded = errors.New("coupon usage limit exceeded")
	ErrCouponBelowMinimum  = errors.New("cart amount below coupon minimum")
)

// 商品与订单错误
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrProductNotAvailable   = errors.New("product not available")
	ErrProductPriceInvalid   = errors.New("product price invalid")
	ErrSlugExists            = errors.New("slug already exists")
	ErrInvalidSlug           = errors.New("slug invalid")
	ErrInvalidOrderItem      = errors.New("invalid order item")
	ErrOrderEmailRequired    = errors.New("order customer email required")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderStatusInvalid    = errors.New("order status invalid")
	ErrCustomerEmailInvalid  = errors.New("customer email invalid")
	ErrEmailServiceDisabled  = errors.New("email service disabled")
	ErrEmailServiceNotConfig = errors.New("email service not configured")
)
