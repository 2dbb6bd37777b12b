package admin

import (
	"github.com/templatehub/storefront/internal/cache"
	handlershared "github.com/templatehub/storefront/internal/http/handlers/shared"
	"github.com/templatehub/storefront/internal/http/response"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Slug     string       `json:"slug" binding:"required"`
	Title    string       `json:"title" binding:"required"`
	Category string       `json:"category"`
	Price    models.Money `json:"price"`
	IsActive *bool        `json:"is_active"`
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

var catalogErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrInvalidSlug, Code: response.CodeBadRequest, Key: "error.slug_invalid"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeUnprocessable, Key: "error.product_price_invalid"},
}

// GetAdminProducts 获取商品列表（含下架）
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.PaginationFromQuery(c)
	products, total, err := h.ProductService.ListAdmin(c.Query("category"), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(service.CreateProductInput{
		Slug:     req.Slug,
		Title:    req.Title,
		Category: req.Category,
		Price:    req.Price,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.product_create_failed")
		return
	}
	response.Success(c, product)
}

// GetAdminCategories 获取分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(service.CreateCategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.category_create_failed")
		return
	}
	if err := cache.Del(c.Request.Context(), cache.PublicCategoriesKey); err != nil {
		requestLog(c).Warnw("public_categories_cache_del_failed", "error", err)
	}
	response.Success(c, category)
}
