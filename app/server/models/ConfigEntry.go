package models

import "time"

// ConfigEntry 站点展示配置，一个 key 至多一行
type ConfigEntry struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Key       string    `gorm:"column:config_key;size:50;uniqueIndex;not null"`                            // 配置键
	Value     string    `gorm:"column:config_value;type:text;not null"`                                    // 配置值
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false;not null;default:CURRENT_TIMESTAMP"` // 由数据库写入
}

func (ConfigEntry) TableName() string {
	return "config"
}
