package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/templatehub/storefront/internal/config"
	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db           *gorm.DB
	couponRepo   *repository.GormCouponRepository
	usageRepo    *repository.GormCouponUsageRepository
	orderRepo    *repository.GormOrderRepository
	productRepo  *repository.GormProductRepository
	customerRepo *repository.GormCustomerRepository
	customers    *CustomerService
	coupons      *CouponService
	admin        *CouponAdminService
	ledger       *CouponLedgerService
	orders       *OrderService
	products     *ProductService
}

func setupServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// sqlite 写锁为库级别，单连接保证并发用例串行执行
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.CouponUsage{},
	))

	f := &serviceFixture{
		db:           db,
		couponRepo:   repository.NewCouponRepository(db),
		usageRepo:    repository.NewCouponUsageRepository(db),
		orderRepo:    repository.NewOrderRepository(db),
		productRepo:  repository.NewProductRepository(db),
		customerRepo: repository.NewCustomerRepository(db),
	}
	f.customers = NewCustomerService(f.customerRepo, f.orderRepo)
	f.coupons = NewCouponService(f.couponRepo, f.usageRepo, f.customers, config.CouponConfig{
		ExpiresSoonDays: 7,
		PublicListLimit: 100,
	})
	f.admin = NewCouponAdminService(f.couponRepo, f.usageRepo)
	f.ledger = NewCouponLedgerService(f.couponRepo, f.usageRepo)
	f.orders = NewOrderService(f.orderRepo, f.productRepo, f.coupons, f.ledger, nil, "USD", 30)
	f.products = NewProductService(f.productRepo)
	return f
}

func (f *serviceFixture) createCoupon(t *testing.T, code string, mutate func(*models.Coupon)) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Code:                code,
		Name:                code,
		Kind:                constants.CouponKindCoupon,
		DiscountType:        constants.DiscountTypePercentage,
		DiscountValue:       models.MustMoney("10"),
		CustomerEligibility: constants.CustomerEligibilityAll,
		ValidFrom:           time.Now().Add(-time.Hour),
		IsActive:            true,
	}
	if mutate != nil {
		mutate(coupon)
	}
	require.NoError(t, f.couponRepo.Create(coupon))
	return coupon
}

func (f *serviceFixture) createProduct(t *testing.T, slug, category, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:     slug,
		Title:    slug,
		Category: category,
		Price:    models.MustMoney(price),
		IsActive: true,
	}
	require.NoError(t, f.productRepo.Create(product))
	return product
}

func (f *serviceFixture) reloadCoupon(t *testing.T, id uint) *models.Coupon {
	t.Helper()
	coupon, err := f.couponRepo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, coupon)
	return coupon
}

func singleLineCart(slug, category, price string, quantity int) *Cart {
	return NewCart([]CartLine{{
		ProductSlug: slug,
		Title:       slug,
		Category:    category,
		UnitPrice:   models.MustMoney(price),
		Quantity:    quantity,
	}})
}

func stringPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func moneyPtr(v string) *models.Money {
	m := models.MustMoney(v)
	return &m
}
