package public

import (
	handlershared "github.com/templatehub/storefront/internal/http/handlers/shared"
	"github.com/templatehub/storefront/internal/http/response"
	"github.com/templatehub/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// couponRejectionRules 结算试算时的优惠券拒绝原因
var couponRejectionRules = []handlershared.ErrorRule{
	{Target: service.ErrCouponNotFound, Code: response.CodeNotFound, Key: "error.coupon_not_found"},
	{Target: service.ErrCouponNotEligible, Code: response.CodeUnprocessable, Key: "error.coupon_not_eligible"},
	{Target: service.ErrCouponLimitExceeded, Code: response.CodeUnprocessable, Key: "error.coupon_limit_exceeded"},
	{Target: service.ErrCouponBelowMinimum, Code: response.CodeUnprocessable, Key: "error.coupon_below_minimum"},
}

var checkoutItemRules = []handlershared.ErrorRule{
	{Target: service.ErrInvalidOrderItem, Code: response.CodeBadRequest, Key: "error.order_item_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductNotAvailable, Code: response.CodeUnprocessable, Key: "error.product_not_available"},
}

var orderPreviewErrorRules = handlershared.ConcatErrorRules(checkoutItemRules, couponRejectionRules)

var orderCreateErrorRules = handlershared.ConcatErrorRules(
	[]handlershared.ErrorRule{
		{Target: service.ErrOrderEmailRequired, Code: response.CodeBadRequest, Key: "error.order_email_required"},
		{Target: service.ErrCustomerEmailInvalid, Code: response.CodeBadRequest, Key: "error.customer_email_invalid"},
	},
	checkoutItemRules,
	couponRejectionRules,
)

func respondOrderPreviewError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, orderPreviewErrorRules, response.CodeInternal, "error.order_fetch_failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "error.order_create_failed")
}
