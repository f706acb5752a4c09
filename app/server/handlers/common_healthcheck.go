package handlers

import (
	"github.com/labstack/echo/v4"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/types"
	"net/http"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

func (a *App) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &types.HealthResponse{
		Success:   true,
		Message:   "API运行正常",
		Timestamp: time.Now().Format(timeLayout),
	})
}

func (a *App) Root(c echo.Context) error {
	res := &types.RootResponse{
		Success: true,
		Message: "Hello World API",
		Version: constants.APIVersion,
	}
	if !a.opts.IsProd {
		res.Docs = "/api/docs"
	}
	return c.JSON(http.StatusOK, res)
}
