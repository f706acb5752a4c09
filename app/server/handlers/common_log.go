package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/types"
	"hello-world-site/app/server/utils"
	"net/http"
)

// LogAdd 记录一次访问，写入失败只记录日志，不影响访客
func (a *App) LogAdd(c echo.Context) error {
	rctx := c.Request().Context()

	ip := utils.ClientIP(c.Request())
	userAgent := c.Request().UserAgent()

	if err := a.logs.Append(rctx, ip, userAgent); err != nil {
		a.l.Error("failed to add access log", zap.String("ip", ip), zap.Error(err))
		a.metrics.AccessLogDropped()
	}

	return c.JSON(http.StatusOK, &types.MessageResponse{
		Success: true,
		Message: "日志记录成功",
	})
}
