package constants

// 优惠券类别常量
const (
	CouponKindCoupon    = "coupon"
	CouponKindPromotion = "promotion"
)

// 优惠方式常量
const (
	DiscountTypePercentage   = "percentage"
	DiscountTypeFixedAmount  = "fixed_amount"
	DiscountTypeFreeShipping = "free_shipping"
)

// 客户资格常量
const (
	CustomerEligibilityAll       = "all"
	CustomerEligibilityNew       = "new_customers"
	CustomerEligibilityReturning = "returning_customers"
	CustomerEligibilityVIP       = "vip_customers"
)

// 优惠券列表状态筛选
const (
	CouponStatusActive   = "active"
	CouponStatusInactive = "inactive"
	CouponStatusExpired  = "expired"
)

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCanceled       = "canceled"
)

// 优惠券展示文案
const (
	DiscountDisplayFreeShipping = "FREE SHIPPING"
	DiscountDisplaySpecialOffer = "SPECIAL OFFER"
)

// 优惠券默认配置
const (
	CouponExpiresSoonDaysDefault = 7
	CouponPublicListLimitDefault = 100
)

// 队列常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskCouponRedeemed     = "coupon:redeemed"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
)

// 订单默认配置
const (
	OrderPaymentExpireMinutesDefault = 30
	OrderMaxItemQuantity             = 100
)

// 兑换结果（用于指标标签）
const (
	RedemptionResultSuccess       = "success"
	RedemptionResultLimitExceeded = "limit_exceeded"
	RedemptionResultNotEligible   = "not_eligible"
	RedemptionResultNotFound      = "not_found"
	RedemptionResultError         = "error"
)

// 站点默认币种
const (
	SiteCurrencyDefault = "USD"
)
