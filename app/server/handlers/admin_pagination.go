package handlers

import (
	"hello-world-site/app/server/constants"
	"strconv"
)

// parsePagination 解析从 1 开始的页码和每页数量，缺省或越界的值会被修正
func (a *App) parsePagination(pageStr string, pageSizeStr string) (page int, pageSize int, err error) {
	page, pageSize = 1, constants.DefaultPageSize

	if pageStr != "" {
		if page, err = strconv.Atoi(pageStr); err != nil {
			return 0, 0, err
		}
	}
	if pageSizeStr != "" {
		if pageSize, err = strconv.Atoi(pageSizeStr); err != nil {
			return 0, 0, err
		}
	}

	if page < 1 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	} else if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return page, pageSize, nil
}

func (a *App) calcMaxPage(count int64, limit int) int64 {
	pageMax := count / int64(limit)
	if (count % int64(limit)) != 0 {
		pageMax++
	}
	return pageMax
}
