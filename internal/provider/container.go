package provider

import (
	"github.com/templatehub/storefront/internal/authz"
	"github.com/templatehub/storefront/internal/cache"
	"github.com/templatehub/storefront/internal/config"
	"github.com/templatehub/storefront/internal/logger"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/queue"
	"github.com/templatehub/storefront/internal/repository"
	"github.com/templatehub/storefront/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo       repository.AdminRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository
	CustomerRepo    repository.CustomerRepository
	OrderRepo       repository.OrderRepository
	ProductRepo     repository.ProductRepository
	CategoryRepo    repository.CategoryRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	EmailService        *service.EmailService
	CustomerService     *service.CustomerService
	CouponService       *service.CouponService
	CouponAdminService  *service.CouponAdminService
	CouponLedgerService *service.CouponLedgerService
	ProductService      *service.ProductService
	CategoryService     *service.CategoryService
	OrderService        *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(models.DB)

	// 2. 初始化 Services
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	c.initServices()

	return c
}

// NewContainerWithDB 基于指定连接构建容器，不连接 Redis 与队列
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, authzService *authz.Service) *Container {
	c := &Container{Config: cfg, AuthzService: authzService}
	c.initRepositories(db)
	c.initServices()
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.OrderRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo, c.CustomerService, c.Config.Coupon)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo, c.CouponUsageRepo)
	c.CouponLedgerService = service.NewCouponLedgerService(c.CouponRepo, c.CouponUsageRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.CouponService,
		c.CouponLedgerService,
		c.QueueClient,
		c.Config.Coupon.Currency,
		c.Config.Order.PaymentExpireMinutes,
	)
}
