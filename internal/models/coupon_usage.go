package models

import "time"

// CouponUsage 优惠券核销记录，创建后不可修改
type CouponUsage struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                           // 主键
	CouponID       uint      `gorm:"index:idx_coupon_usage_customer;not null" json:"coupon_id"`      // 优惠券ID
	CouponCode     string    `gorm:"size:64;not null" json:"coupon_code"`                            // 核销时的优惠码快照
	CustomerEmail  string    `gorm:"index:idx_coupon_usage_customer;not null" json:"customer_email"` // 客户邮箱（小写）
	OrderID        uint      `gorm:"index;not null;default:0" json:"order_id"`                       // 订单ID
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`   // 实际优惠金额
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                                        // 核销时间
}

// TableName 指定表名
func (CouponUsage) TableName() string {
	return "coupon_usages"
}
