package handlers

import (
	"go.uber.org/zap"
	"hello-world-site/app/server/auth"
	"hello-world-site/app/server/metrics"
	"hello-world-site/app/server/store"
)

type Options struct {
	IsProd               bool   // 生产环境不提供接口文档
	AdminUsername        string // 只提交密码时使用的用户名
	LoginRequireUsername bool   // 登录必须提交用户名
}

type App struct {
	l        *zap.Logger           // 日志
	configs  *store.ConfigStore    // 站点配置
	accounts *store.AccountStore   // 管理员账号
	logs     *store.AccessLogStore // 访问日志
	auth     auth.Strategy         // 认证方式
	metrics  *metrics.Metrics      // 监控指标
	opts     Options
}

func NewApp(l *zap.Logger, configs *store.ConfigStore, accounts *store.AccountStore, logs *store.AccessLogStore, strategy auth.Strategy, m *metrics.Metrics, opts Options) *App {
	return &App{
		l:        l,
		configs:  configs,
		accounts: accounts,
		logs:     logs,
		auth:     strategy,
		metrics:  m,
		opts:     opts,
	}
}
