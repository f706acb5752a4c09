package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/types"
	"net/http"
)

func (a *App) ConfigGet(c echo.Context) error {
	rctx := c.Request().Context()

	display, err := a.configs.GetDisplay(rctx)
	if err != nil {
		a.l.Error("failed to get config", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "获取配置失败")
	}

	return c.JSON(http.StatusOK, &types.ConfigResponse{
		Success: true,
		Data: types.SiteConfig{
			MainTitle: display.MainTitle,
			SubTitle:  display.SubTitle,
		},
	})
}
