package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/auth"
	"hello-world-site/app/server/types"
	"net/http"
)

func (a *App) AuthLogout(c echo.Context) error {
	rctx := c.Request().Context()

	claims, _ := auth.ClaimsFrom(c)

	// 注销凭证（令牌模式下无需处理）
	if err := a.auth.Revoke(rctx, auth.CredentialFrom(c)); err != nil {
		a.l.Error("failed to revoke credential", zap.String("username", claims.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "退出登录失败")
	}
	a.auth.Clear(c)

	a.l.Info("admin logged out", zap.String("username", claims.Username))

	return c.JSON(http.StatusOK, &types.MessageResponse{
		Success: true,
		Message: "退出登录成功",
	})
}

// AuthCheck 检查登录状态，不需要认证
func (a *App) AuthCheck(c echo.Context) error {
	rctx := c.Request().Context()

	claims, _, err := auth.Authenticate(rctx, a.auth, c.Request())
	if err != nil {
		if !errors.Is(err, auth.ErrUnauthenticated) && !errors.Is(err, auth.ErrInvalidCredential) {
			a.l.Error("failed to check credential", zap.Error(err))
		}
		return c.JSON(http.StatusOK, &types.CheckResponse{
			Success: true,
			Data:    types.CheckData{LoggedIn: false},
		})
	}

	return c.JSON(http.StatusOK, &types.CheckResponse{
		Success: true,
		Data: types.CheckData{
			LoggedIn: true,
			Username: claims.Username,
		},
	})
}
