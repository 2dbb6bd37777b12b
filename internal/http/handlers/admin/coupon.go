package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/templatehub/storefront/internal/http/handlers/shared"
	"github.com/templatehub/storefront/internal/http/response"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"
	"github.com/templatehub/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponRequest 创建/更新优惠券请求，缺省字段在更新时保持不变
// valid_until 传空字符串表示清除截止时间
type CouponRequest struct {
	Code                     *string       `json:"code"`
	Name                     *string       `json:"name"`
	Description              *string       `json:"description"`
	Kind                     *string       `json:"type"`
	DiscountType             *string       `json:"discount_type"`
	DiscountValue            *models.Money `json:"discount_value"`
	MinimumCartAmount        *models.Money `json:"minimum_cart_amount"`
	MaximumDiscountAmount    *models.Money `json:"maximum_discount_amount"`
	UsageLimit               *int          `json:"usage_limit"`
	UsageLimitPerCustomer    *int          `json:"usage_limit_per_customer"`
	ApplicableProducts       *[]string     `json:"applicable_products"`
	ApplicableCategories     *[]string     `json:"applicable_categories"`
	ExcludedProducts         *[]string     `json:"excluded_products"`
	CustomerEligibility      *string       `json:"customer_eligibility"`
	ApplicableCustomerEmails *[]string     `json:"applicable_customer_emails"`
	ValidFrom                *string       `json:"valid_from"`
	ValidUntil               *string       `json:"valid_until"`
	IsActive                 *bool         `json:"is_active"`
	InternalNotes            *string       `json:"internal_notes"`
}

var couponWriteErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrCouponNotFound, Code: response.CodeNotFound, Key: "error.coupon_not_found"},
	{Target: service.ErrCouponCodeExists, Code: response.CodeConflict, Key: "error.coupon_code_exists"},
	{Target: service.ErrCouponInvalid, Code: response.CodeUnprocessable, Key: "error.coupon_invalid"},
}

func (req *CouponRequest) toInput() (service.CouponInput, error) {
	input := service.CouponInput{
		Code:                     req.Code,
		Name:                     req.Name,
		Description:              req.Description,
		Kind:                     req.Kind,
		DiscountType:             req.DiscountType,
		DiscountValue:            req.DiscountValue,
		MinimumCartAmount:        req.MinimumCartAmount,
		MaximumDiscountAmount:    req.MaximumDiscountAmount,
		UsageLimit:               req.UsageLimit,
		UsageLimitPerCustomer:    req.UsageLimitPerCustomer,
		ApplicableProducts:       req.ApplicableProducts,
		ApplicableCategories:     req.ApplicableCategories,
		ExcludedProducts:         req.ExcludedProducts,
		CustomerEligibility:      req.CustomerEligibility,
		ApplicableCustomerEmails: req.ApplicableCustomerEmails,
		IsActive:                 req.IsActive,
		InternalNotes:            req.InternalNotes,
	}
	if req.ValidFrom != nil && strings.TrimSpace(*req.ValidFrom) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.ValidFrom))
		if err != nil {
			return input, err
		}
		input.ValidFrom = &parsed
	}
	if req.ValidUntil != nil {
		raw := strings.TrimSpace(*req.ValidUntil)
		if raw == "" {
			input.ClearValidUntil = true
		} else {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return input, err
			}
			input.ValidUntil = &parsed
		}
	}
	return input, nil
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(input, adminID)
	if err != nil {
		respondMappedError(c, err, couponWriteErrorRules, response.CodeInternal, "error.coupon_create_failed")
		return
	}
	requestLog(c).Infow("admin_coupon_created", "coupon_id", coupon.ID, "code", coupon.Code, "admin_id", adminID)
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, ok := parseCouponIDParam(c)
	if !ok {
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(couponID, input)
	if err != nil {
		respondMappedError(c, err, couponWriteErrorRules, response.CodeInternal, "error.coupon_update_failed")
		return
	}
	requestLog(c).Infow("admin_coupon_updated", "coupon_id", coupon.ID, "code", coupon.Code)
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券，返回被删除的优惠码
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, ok := parseCouponIDParam(c)
	if !ok {
		return
	}
	code, err := h.CouponAdminService.Delete(couponID)
	if err != nil {
		respondMappedError(c, err, couponWriteErrorRules, response.CodeInternal, "error.coupon_delete_failed")
		return
	}
	requestLog(c).Infow("admin_coupon_deleted", "coupon_id", couponID, "code", code)
	response.Success(c, gin.H{
		"deleted": true,
		"code":    code,
	})
}

// GetAdminCoupon 获取优惠券详情
func (h *Handler) GetAdminCoupon(c *gin.Context) {
	couponID, ok := parseCouponIDParam(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Get(couponID)
	if err != nil {
		respondMappedError(c, err, couponWriteErrorRules, response.CodeInternal, "error.coupon_fetch_failed")
		return
	}
	response.Success(c, coupon)
}

// GetAdminCoupons 获取优惠券列表
func (h *Handler) GetAdminCoupons(c *gin.Context) {
	page, pageSize := handlershared.PaginationFromQuery(c)
	status := strings.TrimSpace(c.Query("status"))
	switch status {
	case "", "active", "inactive", "expired":
	default:
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	coupons, total, err := h.CouponAdminService.List(repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Kind:     c.Query("type"),
		Status:   status,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.BuildPagination(page, pageSize, total))
}

// GetAdminCouponUsages 获取优惠券核销记录
func (h *Handler) GetAdminCouponUsages(c *gin.Context) {
	couponID, ok := parseCouponIDParam(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PaginationFromQuery(c)

	usages, total, err := h.CouponAdminService.ListUsages(repository.CouponUsageListFilter{
		Page:          page,
		PageSize:      pageSize,
		CouponID:      couponID,
		CustomerEmail: c.Query("customer_email"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.coupon_usage_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, usages, response.BuildPagination(page, pageSize, total))
}

func parseCouponIDParam(c *gin.Context) (uint, bool) {
	couponID, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(couponID), true
}
