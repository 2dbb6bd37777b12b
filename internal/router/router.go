package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/templatehub/storefront/internal/authz"
	"github.com/templatehub/storefront/internal/cache"
	"github.com/templatehub/storefront/internal/config"
	adminhandlers "github.com/templatehub/storefront/internal/http/handlers/admin"
	publichandlers "github.com/templatehub/storefront/internal/http/handlers/public"
	"github.com/templatehub/storefront/internal/http/response"
	"github.com/templatehub/storefront/internal/i18n"
	"github.com/templatehub/storefront/internal/logger"
	"github.com/templatehub/storefront/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	adminLoginRule := NewRateLimitRule(cfg.Redis.Prefix, "admin_login", cfg.Security.LoginRateLimit, "error.login_too_many")
	couponRule := NewRateLimitRule(cfg.Redis.Prefix, "coupon", cfg.Security.CouponRateLimit, "")
	checkoutRule := NewRateLimitRule(cfg.Redis.Prefix, "checkout", cfg.Security.CheckoutRateLimit, "")

	// 中间件
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("http_panic_recovered", zap.Any("panic", recovered), zap.String("request_id", getRequestID(c)))
		response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal"))
		c.Abort()
	}))
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(MetricsMiddleware())

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 前台接口（顾客 Token 可选）
		storefront := apiV1.Group("")
		storefront.Use(OptionalCustomerJWTMiddleware(c.AuthService))
		{
			storefront.GET("/coupons", RateLimitMiddleware(redisClient, couponRule, KeyByIP), publicHandler.GetPublicCoupons)
			storefront.POST("/coupons/apply", RateLimitMiddleware(redisClient, couponRule, KeyByIPAndJSONField("code")), publicHandler.ApplyCoupon)
			storefront.GET("/products", publicHandler.GetProducts)
			storefront.GET("/products/:slug", publicHandler.GetProduct)
			storefront.GET("/categories", publicHandler.GetCategories)
			storefront.POST("/orders/preview", RateLimitMiddleware(redisClient, checkoutRule, KeyByIP), publicHandler.PreviewOrder)
			storefront.POST("/orders", RateLimitMiddleware(redisClient, checkoutRule, KeyByIP), publicHandler.CreateOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(c.AuthService, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)

				// 优惠券
				authorized.GET("/coupons", adminHandler.GetAdminCoupons)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.GET("/coupons/:id", adminHandler.GetAdminCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)
				authorized.GET("/coupons/:id/usages", adminHandler.GetAdminCouponUsages)

				// 订单
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:order_no", adminHandler.AdminGetOrder)
				authorized.POST("/orders/:order_no/paid", adminHandler.AdminMarkOrderPaid)

				// 顾客
				authorized.GET("/customers", adminHandler.GetAdminCustomers)
				authorized.PUT("/customers/vip", adminHandler.SetCustomerVIP)

				// 商品与分类
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.GET("/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, response.CodeNotFound, i18n.T(i18n.ResolveLocale(c), "error.not_found"))
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
