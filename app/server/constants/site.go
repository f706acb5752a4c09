package constants

// 配置键与默认值
const (
	ConfigKeyMainTitle = "main_title"
	ConfigKeySubTitle  = "sub_title"

	DefaultMainTitle = "Hello World"
	DefaultSubTitle  = "🎉 欢迎来到我的网站 🎉"
)

// 输入长度限制（按字符计）
const (
	MaxMainTitleLength = 100
	MaxSubTitleLength  = 200
	MaxPasswordLength  = 100
	MaxIPAddressLength = 45
)

// 日志分页
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

const APIVersion = "2.0.0"
