package models

import "time"

type AdminAccount struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;size:50;uniqueIndex;not null"` // 用户名，全局唯一
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`       // 密码 hash ，不离开 store
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime:false;not null;default:CURRENT_TIMESTAMP"`
}

func (AdminAccount) TableName() string {
	return "admin_users"
}
