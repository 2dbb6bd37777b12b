package admin

import (
	"strconv"

	handlershared "github.com/templatehub/storefront/internal/http/handlers/shared"
	"github.com/templatehub/storefront/internal/http/response"
	"github.com/templatehub/storefront/internal/repository"
	"github.com/templatehub/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SetCustomerVIPRequest 设置 VIP 请求
type SetCustomerVIPRequest struct {
	Email string `json:"email" binding:"required"`
	IsVIP *bool  `json:"is_vip" binding:"required"`
}

var customerErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrCustomerEmailInvalid, Code: response.CodeBadRequest, Key: "error.customer_email_invalid"},
}

// GetAdminCustomers 获取客户列表
func (h *Handler) GetAdminCustomers(c *gin.Context) {
	page, pageSize := handlershared.PaginationFromQuery(c)
	onlyVIP, _ := strconv.ParseBool(c.DefaultQuery("only_vip", "false"))

	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
		OnlyVIP:  onlyVIP,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.customer_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, customers, response.BuildPagination(page, pageSize, total))
}

// SetCustomerVIP 设置客户 VIP 标记
func (h *Handler) SetCustomerVIP(c *gin.Context) {
	var req SetCustomerVIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	customer, err := h.CustomerService.SetVIP(req.Email, *req.IsVIP)
	if err != nil {
		respondMappedError(c, err, customerErrorRules, response.CodeInternal, "error.customer_update_failed")
		return
	}
	requestLog(c).Infow("admin_customer_vip_updated", "email", customer.Email, "is_vip", customer.IsVIP)
	response.Success(c, customer)
}
