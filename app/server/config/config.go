package config

import (
	"fmt"
	"regexp"
)

const (
	AuthModeToken   = "token"   // 无状态签名令牌
	AuthModeSession = "session" // 服务端会话（redis）

	DBDriverPostgres = "postgres"
	DBDriverSqlite   = "sqlite"
)

type Config struct {
	System struct {
		IsProd      bool     // 是否为生产环境
		Listen      string   // 监听地址
		Debug       bool     // echo 调试模式（RELOAD）
		Workers     int      // GOMAXPROCS ，0 表示不修改
		LogLevel    string   // 日志等级，为空时按运行模式决定
		CORSOrigins []string // 允许跨域的来源
	}
	Database struct {
		Driver                string // postgres 或 sqlite
		ConnectionString      string // 数据库的连接字符串（ sqlite 下为文件路径）
		RedisConnectionString string // Redis 数据库的连接字符串，可以为空
	}
	Security struct {
		SecretKey            string // JWT 签名密钥，更新会导致旧有令牌失效
		AuthMode             string // token 或 session
		AdminUsername        string // 只提交密码时使用的固定用户名
		LoginRequireUsername bool   // 登录是否必须提交用户名
	}
	Bootstrap struct {
		AdminPassword string // 初始化管理员密码
	}
}

// String 输出时隐藏敏感信息
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{prod: %t, listen: %s, db: %s, redis: %t, auth: %s, secret: ***}",
		c.System.IsProd, c.System.Listen, c.Database.Driver, c.Database.RedisConnectionString != "", c.Security.AuthMode,
	)
}

var (
	dsnPasswordPattern = regexp.MustCompile(`password=\S*`)
	urlPasswordPattern = regexp.MustCompile(`://([^:/@]+):[^@]*@`)
)

// DatabaseTarget 数据库连接信息，隐藏密码
func (c *Config) DatabaseTarget() string {
	target := dsnPasswordPattern.ReplaceAllString(c.Database.ConnectionString, "password=***")
	return urlPasswordPattern.ReplaceAllString(target, "://$1:***@")
}
