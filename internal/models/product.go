package models

import "time"

// Product 模板商品
type Product struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`                   // 唯一标识
	Title     string    `gorm:"not null" json:"title"`                              // 标题
	Category  string    `gorm:"index;not null" json:"category"`                     // 分类 slug
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格
	IsActive  bool      `gorm:"not null;index" json:"is_active"`                    // 是否上架
	CreatedAt time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
