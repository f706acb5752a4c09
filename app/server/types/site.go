package types

type SiteConfig struct {
	MainTitle string `json:"main_title"`
	SubTitle  string `json:"sub_title"`
}

type ConfigResponse struct {
	Success bool       `json:"success"`
	Data    SiteConfig `json:"data"`
}

// ConfigUpdateRequest 未提交的字段保持不变
type ConfigUpdateRequest struct {
	MainTitle *string `json:"main_title"`
	SubTitle  *string `json:"sub_title"`
}

// ConfigUpdateResponse data 中只包含实际修改的字段
type ConfigUpdateResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

type AccessLogItem struct {
	ID         uint    `json:"id"`
	IPAddress  string  `json:"ip_address"`
	UserAgent  *string `json:"user_agent"`
	AccessTime string  `json:"access_time"` // 2006-01-02 15:04:05
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type LogListResponse struct {
	Success    bool            `json:"success"`
	Data       []AccessLogItem `json:"data"`
	Pagination Pagination      `json:"pagination"`
}
