package models

import "time"

// AccessLog 访客访问记录，写入后不再修改
type AccessLog struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	IPAddress  string    `gorm:"column:ip_address;size:45;not null"`
	UserAgent  *string   `gorm:"column:user_agent;type:text"`
	AccessTime time.Time `gorm:"column:access_time;not null;default:CURRENT_TIMESTAMP;index:idx_access_time"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}
