package models

import (
	"time"
)

// Coupon 优惠券/促销定义
// 删除时直接移除定义，使用记录独立保留。
type Coupon struct {
	ID                       uint        `gorm:"primarykey" json:"id"`                                                 // 主键
	Code                     string      `gorm:"uniqueIndex;size:64;not null" json:"code"`                             // 优惠码（统一大写）
	Name                     string      `gorm:"not null" json:"name"`                                                 // 展示名称
	Description              string      `gorm:"type:text" json:"description"`                                         // 描述
	Kind                     string      `gorm:"not null;default:coupon;index" json:"type"`                            // 类别（coupon/promotion）
	DiscountType             string      `gorm:"not null" json:"discount_type"`                                        // 优惠方式
	DiscountValue            Money       `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"`          // 优惠数值
	MinimumCartAmount        Money       `gorm:"type:decimal(20,2);not null;default:0" json:"minimum_cart_amount"`     // 使用门槛（0 表示不限制）
	MaximumDiscountAmount    Money       `gorm:"type:decimal(20,2);not null;default:0" json:"maximum_discount_amount"` // 最大优惠金额（0 表示不封顶）
	UsageLimit               int         `gorm:"not null;default:0" json:"usage_limit"`                                // 总使用上限（0 表示不限制）
	UsageLimitPerCustomer    int         `gorm:"not null;default:0" json:"usage_limit_per_customer"`                   // 每位客户使用上限（0 表示不限制）
	UsageCount               int         `gorm:"not null;default:0" json:"usage_count"`                                // 已使用次数
	ApplicableProducts       StringArray `gorm:"type:text" json:"applicable_products"`                                 // 适用商品 slug
	ApplicableCategories     StringArray `gorm:"type:text" json:"applicable_categories"`                               // 适用分类
	ExcludedProducts         StringArray `gorm:"type:text" json:"excluded_products"`                                   // 排除商品 slug
	CustomerEligibility      string      `gorm:"not null;default:all" json:"customer_eligibility"`                     // 客户资格
	ApplicableCustomerEmails StringArray `gorm:"type:text" json:"applicable_customer_emails"`                          // 指定客户邮箱名单
	ValidFrom                time.Time   `gorm:"index;not null" json:"valid_from"`                                     // 生效时间
	ValidUntil               *time.Time  `gorm:"index" json:"valid_until"`                                             // 失效时间
	IsActive                 bool        `gorm:"not null;index" json:"is_active"`                                      // 是否启用
	InternalNotes            string      `gorm:"type:text" json:"internal_notes"`                                      // 内部备注
	CreatedBy                uint        `gorm:"index" json:"created_by"`                                              // 创建管理员
	CreatedAt                time.Time   `gorm:"index" json:"created_at"`                                              // 创建时间
	UpdatedAt                time.Time   `gorm:"index" json:"updated_at"`                                              // 更新时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}

// HasUsageLimit 是否设置了总使用上限
func (c *Coupon) HasUsageLimit() bool {
	return c != nil && c.UsageLimit > 0
}

// HasPerCustomerLimit 是否设置了每位客户使用上限
func (c *Coupon) HasPerCustomerLimit() bool {
	return c != nil && c.UsageLimitPerCustomer > 0
}
