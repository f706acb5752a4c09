package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"hello-world-site/app/server/apidocs"
	"hello-world-site/app/server/auth"
	"hello-world-site/app/server/config"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/handlers"
	"hello-world-site/app/server/inits"
	"hello-world-site/app/server/jwt"
	"hello-world-site/app/server/metrics"
	"hello-world-site/app/server/store"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd, cfg.System.LogLevel)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	// 切换日志系统
	l.Debug("logger initialized", zap.Stringer("config", cfg))

	if cfg.System.Workers > 0 {
		runtime.GOMAXPROCS(cfg.System.Workers)
	}

	// 初始化数据库连接
	db, err := inits.DB(cfg.Database.Driver, cfg.Database.ConnectionString, !cfg.System.IsProd)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接（可选）
	var rdb *redis.Client
	if cfg.Database.RedisConnectionString != "" {
		if rdb, err = inits.Redis(cfg.Database.RedisConnectionString); err != nil {
			l.Fatal("error initializing Redis connection", zap.Error(err))
		}
	}

	// 准备存储
	configs := store.NewConfigStore(db, rdb, l)
	accounts := store.NewAccountStore(db, l)
	accessLogs := store.NewAccessLogStore(db)

	// 初始化启动数据
	if err = inits.InitData(context.Background(), configs, accounts, cfg.Security.AdminUsername, cfg.Bootstrap.AdminPassword, l); err != nil {
		l.Fatal("error initializing data", zap.Error(err))
	}

	// 准备认证方式
	var strategy auth.Strategy
	switch cfg.Security.AuthMode {
	case config.AuthModeSession:
		strategy = auth.NewSessionStrategy(rdb, constants.AuthTokenDuration, cfg.System.IsProd)
	default:
		j, err := jwt.New(cfg.Security.SecretKey)
		if err != nil {
			l.Fatal("error initializing JWT", zap.Error(err))
		}
		strategy = auth.NewTokenStrategy(j, constants.AuthTokenDuration)
	}

	// 准备监控指标
	m := metrics.New()

	// 准备 handler app
	handlerApp := handlers.NewApp(l, configs, accounts, accessLogs, strategy, m, handlers.Options{
		IsProd:               cfg.System.IsProd,
		AdminUsername:        cfg.Security.AdminUsername,
		LoginRequireUsername: cfg.Security.LoginRequireUsername,
	})

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.System.Debug
	e.HTTPErrorHandler = handlerApp.HTTPErrorHandler
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(m.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.System.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// 绑定 echo 服务
	handlerApp.Register(e)

	// 添加 API 文档
	if !cfg.System.IsProd {
		if specJson, err := apidocs.Spec(cfg.Security.AuthMode).MarshalJSON(); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(apidocs.Doc("/api/docs", specJson, apidocs.WithTitle("Hello World API")))
		}
	}

	// 启动 echo 服务
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	l.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("failed to shut down the server", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
