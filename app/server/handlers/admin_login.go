package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/metrics"
	"hello-world-site/app/server/types"
	"hello-world-site/app/server/utils"
	"net/http"
	"strings"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, msgBadRequest)
	}

	// 未要求用户名时使用固定用户名
	var username string
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	if username == "" && !a.opts.LoginRequireUsername {
		username = a.opts.AdminUsername
	}

	var password string
	if req.Password != nil {
		password = *req.Password
	}

	// 没有写用户名或密码
	if username == "" || password == "" {
		return a.er(c, http.StatusBadRequest, "用户名和密码不能为空")
	}
	if utils.Length(password) > constants.MaxPasswordLength {
		return a.er(c, http.StatusBadRequest, "密码长度不能超过100个字符")
	}

	// 校验密码
	clientIP := utils.ClientIP(c.Request())
	account, err := a.accounts.Verify(rctx, username, password, clientIP)
	if err != nil {
		a.l.Error("failed to verify admin", zap.String("username", username), zap.Error(err))
		a.metrics.LoginAttempt(metrics.LoginError)
		return a.er(c, http.StatusInternalServerError, "登录失败，请稍后重试")
	} else if account == nil {
		// 不区分用户名错误和密码错误
		a.metrics.LoginAttempt(metrics.LoginFailed)
		return a.er(c, http.StatusUnauthorized, "用户名或密码错误")
	}

	// 签发凭证
	cred, err := a.auth.Issue(rctx, account)
	if err != nil {
		a.l.Error("failed to issue credential", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "登录失败，请稍后重试")
	}

	a.metrics.LoginAttempt(metrics.LoginSucceeded)

	// 返回
	return c.JSON(http.StatusOK, &types.LoginResponse{
		Success: true,
		Message: "登录成功",
		Data: types.LoginData{
			Token:    a.auth.Deliver(c, cred),
			Username: account.Username,
			Admin: types.AdminInfo{
				ID:       account.ID,
				Username: account.Username,
			},
		},
	})
}
