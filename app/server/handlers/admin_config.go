package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/auth"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/types"
	"hello-world-site/app/server/utils"
	"net/http"
	"strings"
)

func (a *App) AdminConfigGet(c echo.Context) error {
	return a.ConfigGet(c)
}

func (a *App) AdminConfigUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.ConfigUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, msgBadRequest)
	}

	// 只处理提交了的字段
	updates := make(map[string]string)
	if req.MainTitle != nil {
		mainTitle := strings.TrimSpace(*req.MainTitle)
		if mainTitle == "" {
			return a.er(c, http.StatusBadRequest, "主标题不能为空")
		}
		if utils.Length(mainTitle) > constants.MaxMainTitleLength {
			return a.er(c, http.StatusBadRequest, "主标题不能超过100个字符")
		}
		updates[constants.ConfigKeyMainTitle] = mainTitle
	}
	if req.SubTitle != nil {
		subTitle := strings.TrimSpace(*req.SubTitle)
		if subTitle == "" {
			return a.er(c, http.StatusBadRequest, "副标题不能为空")
		}
		if utils.Length(subTitle) > constants.MaxSubTitleLength {
			return a.er(c, http.StatusBadRequest, "副标题不能超过200个字符")
		}
		updates[constants.ConfigKeySubTitle] = subTitle
	}

	if len(updates) == 0 {
		return a.er(c, http.StatusBadRequest, "没有要更新的内容")
	}

	// 更新配置
	if err := a.configs.SetMany(rctx, updates); err != nil {
		a.l.Error("failed to update config", zap.Any("updates", updates), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "更新配置失败")
	}

	claims, _ := auth.ClaimsFrom(c)
	a.l.Info("config updated", zap.String("username", claims.Username), zap.Any("updates", updates))

	return c.JSON(http.StatusOK, &types.ConfigUpdateResponse{
		Success: true,
		Message: "配置更新成功",
		Data:    updates,
	})
}
