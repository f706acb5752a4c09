package middlewares

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/auth"
	"hello-world-site/app/server/config"
	"hello-world-site/app/server/types"
	"net/http"
)

const (
	msgNotLoggedIn  = "未登录或登录已过期"
	msgInvalidToken = "令牌无效或已过期"
	msgInternal     = "服务器内部错误"
)

// AdminAuth 校验请求携带的凭证，通过后把身份放入上下文
func AdminAuth(strategy auth.Strategy, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx := c.Request().Context()

			claims, value, err := auth.Authenticate(rctx, strategy, c.Request())
			if err != nil {
				switch {
				case auth.IsTokenError(strategy, err):
					l.Debug("rejected admin token", zap.Error(err))
					c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
					return reject(c, http.StatusUnauthorized, msgInvalidToken)
				case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidCredential):
					l.Debug("rejected admin request", zap.Error(err))
					if strategy.Name() == config.AuthModeToken {
						c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
					}
					return reject(c, http.StatusUnauthorized, msgNotLoggedIn)
				default:
					l.Error("failed to verify admin credential", zap.Error(err))
					return reject(c, http.StatusInternalServerError, msgInternal)
				}
			}

			// 设置 context
			auth.SetContext(c, claims, value)

			// 继续处理
			return next(c)
		}
	}
}

func reject(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Success: false,
		Message: message,
	})
}
