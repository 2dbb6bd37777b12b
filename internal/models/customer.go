package models

import "time"

// Customer 客户画像（VIP 标记由外部系统或管理员维护）
type Customer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	IsVIP     bool      `gorm:"not null;default:false" json:"is_vip"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
