package public

import (
	"github.com/templatehub/storefront/internal/http/response"
	"github.com/templatehub/storefront/internal/i18n"
	"github.com/templatehub/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutItemJSON 下单商品
type CheckoutItemJSON struct {
	ProductSlug string `json:"product_slug" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	CustomerEmail string             `json:"customer_email"`
	Items         []CheckoutItemJSON `json:"items" binding:"required"`
	CouponCode    string             `json:"coupon_code"`
	AutoCoupon    bool               `json:"auto_coupon"`
}

func toCheckoutItems(items []CheckoutItemJSON) []service.CheckoutItem {
	result := make([]service.CheckoutItem, 0, len(items))
	for _, item := range items {
		result = append(result, service.CheckoutItem{ProductSlug: item.ProductSlug, Quantity: item.Quantity})
	}
	return result
}

// checkoutInput 已登录顾客以 Token 邮箱为准
func (req *CheckoutRequest) checkoutInput(c *gin.Context) service.CheckoutInput {
	email := getCustomerEmail(c)
	if email == "" {
		email = req.CustomerEmail
	}
	return service.CheckoutInput{
		CustomerEmail: email,
		Items:         toCheckoutItems(req.Items),
		CouponCode:    req.CouponCode,
		AutoCoupon:    req.AutoCoupon,
		Locale:        i18n.ResolveLocale(c),
	}
}

// PreviewOrder 订单金额预览
func (h *Handler) PreviewOrder(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	preview, err := h.OrderService.Preview(req.checkoutInput(c))
	if err != nil {
		respondOrderPreviewError(c, err)
		return
	}
	response.Success(c, preview)
}

// CreateOrder 创建待支付订单，优惠券在确认支付时才核销
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.Create(req.checkoutInput(c))
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, order)
}
