package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/types"
	"net/http"
)

const (
	msgBadRequest = "请求格式错误"
	msgNotFound   = "接口不存在"
	msgInternal   = "服务器内部错误"
)

func (a *App) er(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return c.JSON(statusCode, &types.ErrorMessage{
		Success: false,
		Message: message,
	})
}

// HTTPErrorHandler 把框架产生的错误（未知路由、 panic 等）转换为统一的响应格式
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := http.StatusInternalServerError
	message := msgInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		statusCode = he.Code
		switch {
		case statusCode == http.StatusNotFound:
			message = msgNotFound
		case statusCode < http.StatusInternalServerError:
			message = http.StatusText(statusCode)
		}
	}

	if statusCode >= http.StatusInternalServerError {
		a.l.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("URI", c.Request().RequestURI),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(statusCode)
	} else {
		err = a.er(c, statusCode, message)
	}
	if err != nil {
		a.l.Error("failed to write error response", zap.Error(err))
	}
}
