package config

import (
	serverconfig "hello-world-site/app/server/config"
)

type Config struct {
	// 基础配置，与服务端共用
	Server *serverconfig.Config

	// 初始化选项
	AssumeYes bool   // 跳过确认
	Password  string // 管理员密码，为空时交互输入
}
