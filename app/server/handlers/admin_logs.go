package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"hello-world-site/app/server/types"
	"net/http"
)

func (a *App) AdminLogList(c echo.Context) error {
	rctx := c.Request().Context()

	page, pageSize, err := a.parsePagination(c.QueryParam("page"), c.QueryParam("page_size"))
	if err != nil {
		return a.er(c, http.StatusBadRequest, "分页参数无效")
	}

	logs, err := a.logs.List(rctx, page, pageSize)
	if err != nil {
		a.l.Error("failed to get access log list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "获取日志失败")
	}
	total, err := a.logs.Count(rctx)
	if err != nil {
		a.l.Error("failed to count access logs", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "获取日志失败")
	}

	items := []types.AccessLogItem{}
	for _, log := range logs {
		items = append(items, types.AccessLogItem{
			ID:         log.ID,
			IPAddress:  log.IPAddress,
			UserAgent:  log.UserAgent,
			AccessTime: log.AccessTime.Format(timeLayout),
		})
	}

	return c.JSON(http.StatusOK, &types.LogListResponse{
		Success: true,
		Data:    items,
		Pagination: types.Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: a.calcMaxPage(total, pageSize),
		},
	})
}
