package service

import (
	"strings"
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/logger"
	"github.com/templatehub/storefront/internal/metrics"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

// CouponLedgerService 优惠券核销账本
// 调用方保证同一订单只调用一次 Redeem。
type CouponLedgerService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
	now        func() time.Time
}

// NewCouponLedgerService 创建核销账本服务
func NewCouponLedgerService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponLedgerService {
	return &CouponLedgerService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
		now:        time.Now,
	}
}

// RedeemInput 核销输入
type RedeemInput struct {
	CouponID       uint
	CustomerEmail  string
	DiscountAmount models.Money
	OrderID        uint
}

// Redeem 在独立事务中核销优惠券
func (s *CouponLedgerService) Redeem(input RedeemInput) (*models.CouponUsage, error) {
	return s.RedeemInTx(nil, input)
}

// RedeemInTx 在给定事务内核销（使用保存点），失败时仅回滚本次核销
func (s *CouponLedgerService) RedeemInTx(tx *gorm.DB, input RedeemInput) (*models.CouponUsage, error) {
	email := strings.ToLower(strings.TrimSpace(input.CustomerEmail))
	if input.CouponID == 0 {
		return nil, ErrCouponNotFound
	}
	if email == "" {
		return nil, ErrOrderEmailRequired
	}
	if input.DiscountAmount.Decimal.IsNegative() {
		return nil, ErrCouponInvalid
	}

	var usage *models.CouponUsage
	err := s.couponRepo.WithTx(tx).Transaction(func(inner *gorm.DB) error {
		couponRepo := s.couponRepo.WithTx(inner)
		usageRepo := s.usageRepo.WithTx(inner)

		coupon, err := couponRepo.GetByID(input.CouponID)
		if err != nil {
			return errors.Wrap(err, "load coupon")
		}
		if coupon == nil {
			return ErrCouponNotFound
		}
		now := s.now()
		if !coupon.IsActive || coupon.ValidFrom.After(now) || (coupon.ValidUntil != nil && !coupon.ValidUntil.After(now)) {
			return ErrCouponNotEligible
		}

		// 先做条件更新拿到优惠券行锁，再统计客户使用次数，避免并发下同一客户超用
		affected, err := couponRepo.TryIncrementUsage(coupon.ID)
		if err != nil {
			return errors.Wrap(err, "increment coupon usage")
		}
		if affected == 0 {
			return ErrCouponLimitExceeded
		}

		if coupon.HasPerCustomerLimit() {
			used, err := usageRepo.CountByCustomer(coupon.ID, email)
			if err != nil {
				return errors.Wrap(err, "count customer usages")
			}
			if used >= int64(coupon.UsageLimitPerCustomer) {
				return ErrCouponLimitExceeded
			}
		}

		record := &models.CouponUsage{
			CouponID:       coupon.ID,
			CouponCode:     coupon.Code,
			CustomerEmail:  email,
			OrderID:        input.OrderID,
			DiscountAmount: models.NewMoneyFromDecimal(input.DiscountAmount.Decimal),
			CreatedAt:      now,
		}
		if err := usageRepo.Create(record); err != nil {
			return errors.Wrap(err, "create coupon usage")
		}
		usage = record
		return nil
	})
	if err != nil {
		metrics.ObserveCouponRedemption(redemptionResult(err), 0)
		if errors.Is(err, ErrCouponLimitExceeded) {
			logger.Warnw("coupon_redeem_limit_exceeded",
				"coupon_id", input.CouponID,
				"customer_email", email,
				"order_id", input.OrderID,
			)
		}
		return nil, err
	}
	metrics.ObserveCouponRedemption(constants.RedemptionResultSuccess, usage.DiscountAmount.InexactFloat64())
	logger.Infow("coupon_redeemed",
		"coupon_id", usage.CouponID,
		"coupon_code", usage.CouponCode,
		"usage_id", usage.ID,
		"order_id", usage.OrderID,
		"discount_amount", usage.DiscountAmount.String(),
	)
	return usage, nil
}

func redemptionResult(err error) string {
	switch {
	case err == nil:
		return constants.RedemptionResultSuccess
	case errors.Is(err, ErrCouponLimitExceeded):
		return constants.RedemptionResultLimitExceeded
	case errors.Is(err, ErrCouponNotEligible):
		return constants.RedemptionResultNotEligible
	case errors.Is(err, ErrCouponNotFound):
		return constants.RedemptionResultNotFound
	default:
		return constants.RedemptionResultError
	}
}
