package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/templatehub/storefront/internal/config"
	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/metrics"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"
)

// CouponService 优惠券前台服务（公开列表与结算试算）
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
	customers  *CustomerService
	projector  *CouponProjector
	listLimit  int
	now        func() time.Time
}

// NewCouponService 创建优惠券服务
func NewCouponService(
	couponRepo repository.CouponRepository,
	usageRepo repository.CouponUsageRepository,
	customers *CustomerService,
	cfg config.CouponConfig,
) *CouponService {
	listLimit := cfg.PublicListLimit
	if listLimit <= 0 {
		listLimit = constants.CouponPublicListLimitDefault
	}
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
		customers:  customers,
		projector:  NewCouponProjector(cfg.ExpiresSoonDays),
		listLimit:  listLimit,
		now:        time.Now,
	}
}

// ListPublic 获取当前顾客可见的优惠券，按优惠数值降序
func (s *CouponService) ListPublic(ctx context.Context, customerEmail string) ([]PublicCouponView, error) {
	started := time.Now()
	defer func() {
		metrics.ObservePublicCouponList(time.Since(started))
	}()

	now := s.now()
	var (
		candidates []models.Coupon
		profile    *CustomerProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		list, err := s.couponRepo.ListPublicCandidates(now)
		if err != nil {
			return errors.Wrap(err, "list public coupons")
		}
		candidates = list
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		p, err := s.customers.Profile(customerEmail)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	eligible := FilterEligible(candidates, EligibilityContext{Now: now, Customer: profile})
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].DiscountValue.Decimal.GreaterThan(eligible[j].DiscountValue.Decimal)
	})
	// 条数上限在资格过滤之后生效，避免仅限其他客群的券挤占名额
	if len(eligible) > s.listLimit {
		eligible = eligible[:s.listLimit]
	}
	return s.projector.ProjectAll(eligible, now), nil
}

// ApplyCouponInput 结算试算输入
type ApplyCouponInput struct {
	Code          string
	CustomerEmail string
	Cart          *Cart
}

// DiscountResult 结算试算结果
type DiscountResult struct {
	Coupon          *models.Coupon `json:"-"`
	Code            string         `json:"code"`
	DiscountType    string         `json:"discount_type"`
	DiscountDisplay string         `json:"discount_display"`
	DiscountAmount  models.Money   `json:"discount_amount"`
	Subtotal        models.Money   `json:"subtotal"`
	Total           models.Money   `json:"total"`
	FreeShipping    bool           `json:"free_shipping"`
}

// ApplyCoupon 按优惠码计算优惠，失败时返回 NotFound / NotEligible / LimitExceeded / BelowMinimum
func (s *CouponService) ApplyCoupon(input ApplyCouponInput) (*DiscountResult, error) {
	result, err := s.applyCoupon(input)
	if err != nil {
		metrics.ObserveCouponApplication(redemptionResult(err))
		return nil, err
	}
	metrics.ObserveCouponApplication(constants.RedemptionResultSuccess)
	return result, nil
}

func (s *CouponService) applyCoupon(input ApplyCouponInput) (*DiscountResult, error) {
	if input.Cart == nil {
		return nil, ErrInvalidOrderItem
	}
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrCouponNotFound
	}
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, errors.Wrap(err, "load coupon by code")
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	profile, err := s.customers.Profile(input.CustomerEmail)
	if err != nil {
		return nil, err
	}
	if err := checkEligibility(coupon, EligibilityContext{Now: s.now(), Customer: profile, Cart: input.Cart}); err != nil {
		return nil, err
	}
	if profile != nil && coupon.HasPerCustomerLimit() {
		used, err := s.usageRepo.CountByCustomer(coupon.ID, profile.Email)
		if err != nil {
			return nil, errors.Wrap(err, "count customer usages")
		}
		if used >= int64(coupon.UsageLimitPerCustomer) {
			return nil, ErrCouponLimitExceeded
		}
	}
	return buildDiscountResult(coupon, input.Cart), nil
}

// AutoApply 未指定优惠码时自动选择最优百分比券，没有可用券时返回 nil
func (s *CouponService) AutoApply(customerEmail string, cart *Cart) (*DiscountResult, error) {
	if cart == nil {
		return nil, ErrInvalidOrderItem
	}
	now := s.now()
	candidates, err := s.couponRepo.ListAutoApplyCandidates(now)
	if err != nil {
		return nil, errors.Wrap(err, "list auto apply coupons")
	}
	profile, err := s.customers.Profile(customerEmail)
	if err != nil {
		return nil, err
	}
	eligible := FilterEligible(candidates, EligibilityContext{Now: now, Customer: profile, Cart: cart})
	for len(eligible) > 0 {
		best := BestCoupon(eligible)
		if best == nil {
			return nil, nil
		}
		result, err := s.ApplyCoupon(ApplyCouponInput{Code: best.Code, CustomerEmail: customerEmail, Cart: cart})
		if err == nil {
			return result, nil
		}
		if !IsCouponRejection(err) {
			return nil, err
		}
		eligible = removeCoupon(eligible, best.ID)
	}
	return nil, nil
}

func buildDiscountResult(coupon *models.Coupon, cart *Cart) *DiscountResult {
	discount := ComputeDiscount(eligibleAmount(coupon, cart), coupon)
	total := cart.Subtotal.Decimal.Sub(discount.Decimal)
	return &DiscountResult{
		Coupon:          coupon,
		Code:            coupon.Code,
		DiscountType:    coupon.DiscountType,
		DiscountDisplay: DiscountDisplay(coupon),
		DiscountAmount:  discount,
		Subtotal:        cart.Subtotal,
		Total:           models.NewMoneyFromDecimal(total),
		FreeShipping:    coupon.DiscountType == constants.DiscountTypeFreeShipping,
	}
}

// IsCouponRejection 判断是否为优惠券业务拒绝（而非存储错误）
func IsCouponRejection(err error) bool {
	return errors.Is(err, ErrCouponNotFound) ||
		errors.Is(err, ErrCouponNotEligible) ||
		errors.Is(err, ErrCouponLimitExceeded) ||
		errors.Is(err, ErrCouponBelowMinimum)
}

func removeCoupon(coupons []models.Coupon, id uint) []models.Coupon {
	result := make([]models.Coupon, 0, len(coupons))
	for _, coupon := range coupons {
		if coupon.ID != id {
			result = append(result, coupon)
		}
	}
	return result
}
