package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"

	"gorm.io/gorm"
)

// CouponRepository 优惠券数据访问接口
type CouponRepository interface {
	GetByID(id uint) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	CountByCode(code string, excludeID uint) (int64, error)
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id uint) error
	List(filter CouponListFilter) ([]models.Coupon, int64, error)
	ListPublicCandidates(now time.Time) ([]models.Coupon, error)
	ListAutoApplyCandidates(now time.Time) ([]models.Coupon, error)
	TryIncrementUsage(id uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormCouponRepository
}

// GormCouponRepository GORM 实现
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓库
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCouponRepository) WithTx(tx *gorm.DB) *GormCouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCouponRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 根据ID获取优惠券
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByCode 根据优惠码获取优惠券（不区分大小写）
func (r *GormCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}
	var coupon models.Coupon
	if err := r.db.Where("code = ?", normalized).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// CountByCode 统计优惠码占用数量，excludeID 用于更新时排除自身
func (r *GormCouponRepository) CountByCode(code string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Coupon{}).Where("code = ?", strings.ToUpper(strings.TrimSpace(code)))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建优惠券，优惠码冲突返回 gorm.ErrDuplicatedKey
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return translateDuplicateKey(r.db.Create(coupon).Error)
}

// Update 更新优惠券定义字段，不覆盖使用次数
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return translateDuplicateKey(r.db.Model(coupon).Omit("usage_count", "created_by", "created_at").Select("*").Updates(coupon).Error)
}

// Delete 删除优惠券，使用记录保留
func (r *GormCouponRepository) Delete(id uint) error {
	return r.db.Delete(&models.Coupon{}, id).Error
}

// List 获取优惠券列表
func (r *GormCouponRepository) List(filter CouponListFilter) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	query := r.db.Model(&models.Coupon{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"code", "name"})
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	if kind := strings.TrimSpace(filter.Kind); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}
	switch strings.TrimSpace(filter.Status) {
	case constants.CouponStatusActive:
		query = query.Where("is_active = ? AND (valid_until IS NULL OR valid_until > ?)", true, now)
	case constants.CouponStatusInactive:
		query = query.Where("is_active = ?", false)
	case constants.CouponStatusExpired:
		query = query.Where("valid_until IS NOT NULL AND valid_until <= ?", now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at desc").Order("id desc").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

// ListPublicCandidates 获取可公开展示的优惠券候选（未指定客户名单、在有效期内、未用尽）
// 不限制条数：顾客资格在服务层过滤，截断须在过滤之后进行
func (r *GormCouponRepository) ListPublicCandidates(now time.Time) ([]models.Coupon, error) {
	var coupons []models.Coupon
	query := r.usableAt(now).Where(emptyJSONArrayCondition("applicable_customer_emails"))
	if err := query.Order("discount_value desc").Order("id asc").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// ListAutoApplyCandidates 获取自动选券候选：百分比券，包含指定客户名单的券
func (r *GormCouponRepository) ListAutoApplyCandidates(now time.Time) ([]models.Coupon, error) {
	var coupons []models.Coupon
	query := r.usableAt(now).Where("discount_type = ?", constants.DiscountTypePercentage)
	if err := query.Order("discount_value desc").Order("created_at asc").Order("id asc").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *GormCouponRepository) usableAt(now time.Time) *gorm.DB {
	return r.db.Model(&models.Coupon{}).
		Where("is_active = ?", true).
		Where("valid_from <= ?", now).
		Where("valid_until IS NULL OR valid_until > ?", now).
		Where("usage_limit = 0 OR usage_count < usage_limit")
}

// TryIncrementUsage 在未达到总使用上限时原子地增加使用次数，返回受影响行数
func (r *GormCouponRepository) TryIncrementUsage(id uint) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid coupon id")
	}
	result := r.db.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", id).
		UpdateColumns(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + ?", 1),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
