package main

import (
	"fmt"
	"os"
	"time"

	"github.com/templatehub/storefront/internal/authz"
	"github.com/templatehub/storefront/internal/config"
	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/logger"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/provider"
	"github.com/templatehub/storefront/internal/service"

	"github.com/go-faster/errors"
)

const seedAdminPasswordEnv = "STOREFRONT_SEED_ADMIN_PASSWORD"

type seedAdmin struct {
	Username string
	Role     string
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	c := provider.NewContainer(cfg)

	for _, input := range seedCategories() {
		category, err := c.CategoryService.Create(input)
		logSeedResult(stdLog, "category", input.Slug, category != nil, err, service.ErrSlugExists)
	}
	for _, input := range seedProducts() {
		product, err := c.ProductService.Create(input)
		logSeedResult(stdLog, "product", input.Slug, product != nil, err, service.ErrSlugExists)
	}
	for _, input := range seedCoupons(time.Now()) {
		coupon, err := c.CouponAdminService.Create(input, 0)
		logSeedResult(stdLog, "coupon", *input.Code, coupon != nil, err, service.ErrCouponCodeExists)
	}

	if _, err := c.CustomerService.SetVIP("vip@example.com", true); err != nil {
		stdLog.Printf("Failed to mark VIP customer: %v", err)
	}

	password := os.Getenv(seedAdminPasswordEnv)
	if password == "" {
		stdLog.Printf("%s not set, skipping sample admins", seedAdminPasswordEnv)
	} else {
		for _, admin := range []seedAdmin{
			{Username: "operations", Role: authz.RoleOperations},
			{Username: "auditor", Role: authz.RoleReadonlyAuditor},
		} {
			if err := ensureAdmin(c, admin, password); err != nil {
				stdLog.Printf("Failed to seed admin %s: %v", admin.Username, err)
			} else {
				stdLog.Printf("Admin ready: %s (%s)", admin.Username, admin.Role)
			}
		}
	}

	for _, email := range []string{"vip@example.com", "shopper@example.com"} {
		token, expiresAt, err := c.AuthService.GenerateUserJWT(email)
		if err != nil {
			stdLog.Printf("Failed to sign customer token for %s: %v", email, err)
			continue
		}
		fmt.Printf("customer %s token (expires %s):\n%s\n", email, expiresAt.Format(time.RFC3339), token)
	}
}

func logSeedResult(stdLog interface{ Printf(string, ...interface{}) }, kind, key string, created bool, err, existsErr error) {
	switch {
	case err == nil && created:
		stdLog.Printf("Created %s: %s", kind, key)
	case errors.Is(err, existsErr):
		stdLog.Printf("%s already exists: %s", kind, key)
	default:
		stdLog.Printf("Failed to create %s %s: %v", kind, key, err)
	}
}

func ensureAdmin(c *provider.Container, seed seedAdmin, password string) error {
	existing, err := c.AdminRepo.GetByUsername(seed.Username)
	if err != nil {
		return err
	}
	if existing == nil {
		hash, err := c.AuthService.HashPassword(password)
		if err != nil {
			return err
		}
		existing = &models.Admin{Username: seed.Username, PasswordHash: hash}
		if err := c.AdminRepo.Create(existing); err != nil {
			return err
		}
	}
	return c.AuthzService.SetAdminRoles(existing.ID, []string{seed.Role})
}

func seedCategories() []service.CreateCategoryInput {
	return []service.CreateCategoryInput{
		{Slug: "landing", Name: "Landing pages", SortOrder: 30},
		{Slug: "blog", Name: "Blog themes", SortOrder: 20},
		{Slug: "ecommerce", Name: "E-commerce kits", SortOrder: 10},
	}
}

func seedProducts() []service.CreateProductInput {
	return []service.CreateProductInput{
		{Slug: "saas-landing", Title: "SaaS landing kit", Category: "landing", Price: models.MustMoney("59")},
		{Slug: "agency-landing", Title: "Agency landing kit", Category: "landing", Price: models.MustMoney("39")},
		{Slug: "minimal-blog", Title: "Minimal blog theme", Category: "blog", Price: models.MustMoney("29")},
		{Slug: "shop-starter", Title: "Shop starter", Category: "ecommerce", Price: models.MustMoney("99")},
	}
}

func seedCoupons(now time.Time) []service.CouponInput {
	str := func(v string) *string { return &v }
	num := func(v int) *int { return &v }
	money := func(v string) *models.Money {
		m := models.MustMoney(v)
		return &m
	}
	list := func(v ...string) *[]string { return &v }
	monthEnd := now.AddDate(0, 1, 0)
	soon := now.AddDate(0, 0, 3)

	return []service.CouponInput{
		{
			Code: str("SAVE20"), Name: str("Spring sale"),
			DiscountType: str(constants.DiscountTypePercentage), DiscountValue: money("20"),
			MaximumDiscountAmount: money("50"), UsageLimit: num(500), ValidUntil: &monthEnd,
		},
		{
			Code: str("WELCOME10"), Name: str("Welcome offer"),
			DiscountType: str(constants.DiscountTypeFixedAmount), DiscountValue: money("10"),
			MinimumCartAmount: money("30"), UsageLimitPerCustomer: num(1),
			CustomerEligibility: str(constants.CustomerEligibilityNew),
		},
		{
			Code: str("VIP30"), Name: str("VIP thank you"),
			DiscountType: str(constants.DiscountTypePercentage), DiscountValue: money("30"),
			CustomerEligibility: str(constants.CustomerEligibilityVIP),
		},
		{
			Code: str("BLOG50"), Name: str("Blog theme flash sale"),
			DiscountType: str(constants.DiscountTypePercentage), DiscountValue: money("50"),
			ApplicableCategories: list("blog"), UsageLimit: num(50), ValidUntil: &soon,
		},
		{
			Code: str("FREESHIP"), Name: str("Free shipping"),
			DiscountType: str(constants.DiscountTypeFreeShipping), DiscountValue: money("0"),
		},
		{
			Code: str("LAUNCH"), Name: str("Launch promotion"), Kind: str(constants.CouponKindPromotion),
			DiscountType: str(constants.DiscountTypeFixedAmount), DiscountValue: money("15"),
			ApplicableProducts: list("shop-starter"),
		},
	}
}
