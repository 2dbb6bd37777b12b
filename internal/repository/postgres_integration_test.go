//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.CouponUsage{},
		&models.Coupon{},
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.CouponUsage{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)
	product := &models.Product{Slug: "pg-rocket-landing", Title: "Rocket Landing", Category: "landing", Price: models.MustMoney("49"), IsActive: true}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := repo.List(ProductListFilter{Search: "rocket", OnlyActive: true})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresCouponGuardedIncrement(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewCouponRepository(db)
	coupon := &models.Coupon{
		Code:                "PGLAST3",
		Name:                "Postgres last three",
		Kind:                constants.CouponKindCoupon,
		DiscountType:        constants.DiscountTypePercentage,
		DiscountValue:       models.MustMoney("10"),
		CustomerEligibility: constants.CustomerEligibilityAll,
		UsageLimit:          3,
		ValidFrom:           time.Now().UTC().Add(-time.Hour),
		IsActive:            true,
	}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	const workers = 12
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int64
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			affected, err := repo.TryIncrementUsage(coupon.ID)
			if err != nil {
				t.Errorf("increment failed: %v", err)
				return
			}
			mu.Lock()
			granted += affected
			mu.Unlock()
		}()
	}
	wg.Wait()

	if granted != 3 {
		t.Fatalf("granted increments want 3 got %d", granted)
	}
	reloaded, err := repo.GetByID(coupon.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsageCount != 3 {
		t.Fatalf("usage count want 3 got %d", reloaded.UsageCount)
	}

	candidates, err := repo.ListPublicCandidates(time.Now().UTC())
	if err != nil {
		t.Fatalf("list public candidates failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("exhausted coupon should not be listed, got %d", len(candidates))
	}
}

func TestPostgresCouponCodeLookupIgnoresCase(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewCouponRepository(db)
	coupon := &models.Coupon{
		Code:                "PGSAVE",
		Name:                "Postgres save",
		Kind:                constants.CouponKindCoupon,
		DiscountType:        constants.DiscountTypeFixedAmount,
		DiscountValue:       models.MustMoney("5"),
		CustomerEligibility: constants.CustomerEligibilityAll,
		ValidFrom:           time.Now().UTC().Add(-time.Hour),
		IsActive:            true,
	}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	found, err := repo.GetByCode("pgsave")
	if err != nil || found == nil || found.ID != coupon.ID {
		t.Fatalf("get by code ignoring case failed: found=%v err=%v", found, err)
	}
}
