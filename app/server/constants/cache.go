package constants

import "time"

const (
	CacheKeySiteConfig        = "site:config"         // hash: config_key -> config_value
	CacheKeySiteConfigVersion = "site:config:version" // 每次写入配置后递增
	CacheKeySession           = "site:session:%s"     // %s -> session id
)

const (
	CacheExpireSiteConfig = 10 * time.Minute
)
