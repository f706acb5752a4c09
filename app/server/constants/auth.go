package constants

import "time"

const (
	AuthTokenDuration    = 24 * time.Hour // 令牌与会话的有效期
	SessionCookieName    = "site_session"
	DefaultAdminUsername = "admin"
)
