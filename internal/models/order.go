package models

import "time"

// Order 订单
type Order struct {
	ID             uint        `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo        string      `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单号
	CustomerEmail  string      `gorm:"index;not null" json:"customer_email"`                         // 客户邮箱（小写）
	Status         string      `gorm:"index;not null" json:"status"`                                 // 订单状态
	Currency       string      `gorm:"not null" json:"currency"`                                     // 币种
	SubtotalAmount Money       `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_amount"` // 商品小计
	DiscountAmount Money       `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount    Money       `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 应付金额
	CouponID       *uint       `gorm:"index" json:"coupon_id,omitempty"`                             // 使用的优惠券
	CouponCode     string      `gorm:"size:64" json:"coupon_code,omitempty"`                         // 优惠码快照
	FreeShipping   bool        `gorm:"not null;default:false" json:"free_shipping"`                  // 是否包邮券
	Locale         string      `gorm:"size:16" json:"-"`                                             // 通知语言
	ExpiresAt      *time.Time  `gorm:"index" json:"expires_at"`                                      // 支付截止时间
	PaidAt         *time.Time  `gorm:"index" json:"paid_at"`                                         // 支付时间
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`                    // 订单项
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time   `json:"updated_at"`                                                   // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
