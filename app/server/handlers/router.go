package handlers

import (
	"github.com/labstack/echo/v4"
	"hello-world-site/app/server/middlewares"
)

func (a *App) Register(e *echo.Echo) {
	e.GET("/", a.Root)
	e.GET("/metrics", echo.WrapHandler(a.metrics.Handler()))

	// 公开接口
	api := e.Group("/api")
	api.GET("/health", a.HealthCheck)
	api.GET("/config", a.ConfigGet)
	api.POST("/log", a.LogAdd)

	// 管理接口
	admin := api.Group("/admin")
	admin.POST("/login", a.AuthLogin)
	admin.GET("/check", a.AuthCheck)

	guarded := admin.Group("", middlewares.AdminAuth(a.auth, a.l))
	guarded.POST("/logout", a.AuthLogout)
	guarded.GET("/config", a.AdminConfigGet)
	guarded.PUT("/config", a.AdminConfigUpdate)
	guarded.GET("/logs", a.AdminLogList)
	guarded.GET("/profile", a.UserInfoGetSelf)
	guarded.PUT("/password", a.UserPasswordUpdate)
}
