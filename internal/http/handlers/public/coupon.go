package public

import (
	"strings"

	"github.com/templatehub/storefront/internal/http/response"
	"github.com/templatehub/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplyCouponRequest 优惠码试算请求
type ApplyCouponRequest struct {
	Code  string             `json:"code" binding:"required"`
	Items []CheckoutItemJSON `json:"items" binding:"required"`
}

// GetPublicCoupons 获取当前顾客可用的公开优惠券
func (h *Handler) GetPublicCoupons(c *gin.Context) {
	coupons, err := h.CouponService.ListPublic(c.Request.Context(), getCustomerEmail(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		return
	}
	response.Success(c, coupons)
}

// ApplyCoupon 按购物车试算优惠码，不占用使用次数
func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	preview, err := h.OrderService.Preview(service.CheckoutInput{
		CustomerEmail: getCustomerEmail(c),
		Items:         toCheckoutItems(req.Items),
		CouponCode:    req.Code,
	})
	if err != nil {
		respondOrderPreviewError(c, err)
		return
	}
	response.Success(c, preview.Coupon)
}
