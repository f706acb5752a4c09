package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/auth"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/store"
	"hello-world-site/app/server/types"
	"hello-world-site/app/server/utils"
	"net/http"
	"time"
)

func (a *App) UserInfoGetSelf(c echo.Context) error {
	rctx := c.Request().Context()

	claims, _ := auth.ClaimsFrom(c)

	// 从数据库中获得当前的管理员
	account, err := a.accounts.GetByID(rctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "管理员信息不存在")
		}
		a.l.Error("failed to get admin", zap.Uint("id", claims.AdminID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "获取信息失败")
	}

	return c.JSON(http.StatusOK, &types.ProfileResponse{
		Success: true,
		Data: types.Profile{
			ID:        account.ID,
			Username:  account.Username,
			CreatedAt: account.CreatedAt.Format(time.RFC3339),
		},
	})
}

func (a *App) UserPasswordUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	claims, _ := auth.ClaimsFrom(c)

	// 绑定请求体
	var req types.PasswordUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, msgBadRequest)
	}
	if req.OldPassword == nil || *req.OldPassword == "" || req.NewPassword == nil || *req.NewPassword == "" {
		return a.er(c, http.StatusBadRequest, "原密码和新密码不能为空")
	}
	if utils.Length(*req.NewPassword) > constants.MaxPasswordLength {
		return a.er(c, http.StatusBadRequest, "新密码不能超过100个字符")
	}

	// 当前管理员必须仍然存在
	account, err := a.accounts.GetByID(rctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "管理员信息不存在")
		}
		a.l.Error("failed to get admin", zap.Uint("id", claims.AdminID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "修改密码失败")
	}

	// 校验原密码
	if verified, err := a.accounts.Verify(rctx, account.Username, *req.OldPassword, utils.ClientIP(c.Request())); err != nil {
		a.l.Error("failed to verify admin", zap.String("username", account.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "修改密码失败")
	} else if verified == nil {
		return a.er(c, http.StatusUnauthorized, "原密码错误")
	}

	// 更新密码
	if err := a.accounts.SetPassword(rctx, account.Username, *req.NewPassword); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "管理员信息不存在")
		}
		a.l.Error("failed to update password", zap.String("username", account.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "修改密码失败")
	}

	return c.JSON(http.StatusOK, &types.MessageResponse{
		Success: true,
		Message: "密码修改成功",
	})
}
