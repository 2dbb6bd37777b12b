package models

import "time"

// Category 模板分类
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`  // 唯一标识
	Name      string    `gorm:"not null" json:"name"`              // 名称
	SortOrder int       `gorm:"default:0;index" json:"sort_order"` // 排序权重
	CreatedAt time.Time `gorm:"index" json:"created_at"`           // 创建时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
