package service

import (
	"strings"
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/logger"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

// CouponAdminService 优惠券管理服务
type CouponAdminService struct {
	repo      repository.CouponRepository
	usageRepo repository.CouponUsageRepository
	now       func() time.Time
}

// NewCouponAdminService 创建优惠券管理服务
func NewCouponAdminService(repo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponAdminService {
	return &CouponAdminService{
		repo:      repo,
		usageRepo: usageRepo,
		now:       time.Now,
	}
}

// CouponInput 创建/更新优惠券输入，nil 字段表示不修改
type CouponInput struct {
	Code                     *string
	Name                     *string
	Description              *string
	Kind                     *string
	DiscountType             *string
	DiscountValue            *models.Money
	MinimumCartAmount        *models.Money
	MaximumDiscountAmount    *models.Money
	UsageLimit               *int
	UsageLimitPerCustomer    *int
	ApplicableProducts       *[]string
	ApplicableCategories     *[]string
	ExcludedProducts         *[]string
	CustomerEligibility      *string
	ApplicableCustomerEmails *[]string
	ValidFrom                *time.Time
	ValidUntil               *time.Time
	ClearValidUntil          bool
	IsActive                 *bool
	InternalNotes            *string
}

// Create 创建优惠券
func (s *CouponAdminService) Create(input CouponInput, adminID uint) (*models.Coupon, error) {
	if input.DiscountValue == nil {
		return nil, invalidCoupon("error.coupon_value_required")
	}
	coupon := &models.Coupon{
		Kind:                constants.CouponKindCoupon,
		CustomerEligibility: constants.CustomerEligibilityAll,
		ValidFrom:           s.now(),
		IsActive:            true,
		CreatedBy:           adminID,
	}
	applyCouponInput(coupon, input)
	coupon.UsageCount = 0
	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByCode(coupon.Code, 0)
	if err != nil {
		return nil, errors.Wrap(err, "check coupon code")
	}
	if count > 0 {
		return nil, ErrCouponCodeExists
	}
	if err := s.repo.Create(coupon); err != nil {
		// 并发创建同一优惠码时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCouponCodeExists
		}
		return nil, errors.Wrap(err, "create coupon")
	}
	logger.Infow("coupon_created", "coupon_id", coupon.ID, "code", coupon.Code, "admin_id", adminID)
	return coupon, nil
}

// Update 按补丁更新优惠券，并重新校验取值范围
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	if id == 0 {
		return nil, ErrCouponNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "load coupon")
	}
	if existing == nil {
		return nil, ErrCouponNotFound
	}

	previousCode := existing.Code
	applyCouponInput(existing, input)
	if err := validateCoupon(existing); err != nil {
		return nil, err
	}
	if existing.Code != previousCode {
		count, err := s.repo.CountByCode(existing.Code, existing.ID)
		if err != nil {
			return nil, errors.Wrap(err, "check coupon code")
		}
		if count > 0 {
			return nil, ErrCouponCodeExists
		}
	}
	if err := s.repo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCouponCodeExists
		}
		return nil, errors.Wrap(err, "update coupon")
	}
	return s.repo.GetByID(id)
}

// Delete 删除优惠券并返回其优惠码，使用记录保留
func (s *CouponAdminService) Delete(id uint) (string, error) {
	if id == 0 {
		return "", ErrCouponNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "load coupon")
	}
	if existing == nil {
		return "", ErrCouponNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return "", errors.Wrap(err, "delete coupon")
	}
	logger.Infow("coupon_deleted", "coupon_id", id, "code", existing.Code)
	return existing.Code, nil
}

// Get 获取优惠券详情
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "load coupon")
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// List 获取优惠券列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}
	return s.repo.List(filter)
}

// ListUsages 获取优惠券使用记录
func (s *CouponAdminService) ListUsages(filter repository.CouponUsageListFilter) ([]models.CouponUsage, int64, error) {
	return s.usageRepo.List(filter)
}

func applyCouponInput(coupon *models.Coupon, input CouponInput) {
	if input.Code != nil {
		coupon.Code = normalizeCouponCode(*input.Code)
	}
	if input.Name != nil {
		coupon.Name = sanitizePlainText(*input.Name)
	}
	if input.Description != nil {
		coupon.Description = sanitizeRichText(*input.Description)
	}
	if input.Kind != nil {
		coupon.Kind = strings.ToLower(strings.TrimSpace(*input.Kind))
	}
	if input.DiscountType != nil {
		coupon.DiscountType = strings.ToLower(strings.TrimSpace(*input.DiscountType))
	}
	if input.DiscountValue != nil {
		coupon.DiscountValue = models.NewMoneyFromDecimal(input.DiscountValue.Decimal)
	}
	if input.MinimumCartAmount != nil {
		coupon.MinimumCartAmount = models.NewMoneyFromDecimal(input.MinimumCartAmount.Decimal)
	}
	if input.MaximumDiscountAmount != nil {
		coupon.MaximumDiscountAmount = models.NewMoneyFromDecimal(input.MaximumDiscountAmount.Decimal)
	}
	if input.UsageLimit != nil {
		coupon.UsageLimit = *input.UsageLimit
	}
	if input.UsageLimitPerCustomer != nil {
		coupon.UsageLimitPerCustomer = *input.UsageLimitPerCustomer
	}
	if input.ApplicableProducts != nil {
		coupon.ApplicableProducts = models.StringArray(*input.ApplicableProducts).Normalize(true)
	}
	if input.ApplicableCategories != nil {
		coupon.ApplicableCategories = models.StringArray(*input.ApplicableCategories).Normalize(true)
	}
	if input.ExcludedProducts != nil {
		coupon.ExcludedProducts = models.StringArray(*input.ExcludedProducts).Normalize(true)
	}
	if input.CustomerEligibility != nil {
		coupon.CustomerEligibility = strings.ToLower(strings.TrimSpace(*input.CustomerEligibility))
	}
	if input.ApplicableCustomerEmails != nil {
		coupon.ApplicableCustomerEmails = models.StringArray(*input.ApplicableCustomerEmails).Normalize(true)
	}
	if input.ValidFrom != nil {
		coupon.ValidFrom = *input.ValidFrom
	}
	if input.ClearValidUntil {
		coupon.ValidUntil = nil
	} else if input.ValidUntil != nil {
		validUntil := *input.ValidUntil
		coupon.ValidUntil = &validUntil
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if input.InternalNotes != nil {
		coupon.InternalNotes = sanitizePlainText(*input.InternalNotes)
	}
}
