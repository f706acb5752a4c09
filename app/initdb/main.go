package main

import (
	"bufio"
	"context"
	"fmt"
	"go.uber.org/zap"
	"hello-world-site/app/initdb/inits"
	serverinits "hello-world-site/app/server/inits"
	"hello-world-site/app/server/store"
	"log"
	"os"
	"strings"
)

const defaultAdminPassword = "admin123"

func main() {
	// 初始化配置
	cfg, err := inits.Config(os.Args[1:])
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := serverinits.Logger(!cfg.Server.System.IsProd, cfg.Server.System.LogLevel)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	stdin := bufio.NewReader(os.Stdin)

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Hello World 管理后台 - 数据库初始化")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()
	fmt.Println("当前数据库配置：")
	fmt.Printf("  驱动: %s\n", cfg.Server.Database.Driver)
	fmt.Printf("  连接: %s\n", cfg.Server.DatabaseTarget())
	fmt.Println()

	// 确认是否继续
	if !cfg.AssumeYes && !confirm(stdin, os.Stdout, "确认要初始化数据库吗?") {
		fmt.Println("操作已取消")
		return
	}

	// 管理员密码
	username := cfg.Server.Security.AdminUsername
	password := cfg.Password
	if password == "" && !cfg.AssumeYes {
		fmt.Printf("设置管理员密码（用户名: %s）\n", username)
		if password, err = readPassword(stdin, os.Stdout, "请输入管理员密码（留空使用默认密码）: "); err != nil {
			l.Fatal("error reading password", zap.Error(err))
		}
	}
	usingDefault := password == ""
	if usingDefault {
		password = defaultAdminPassword
	}

	// 创建表
	db, err := serverinits.DB(cfg.Server.Database.Driver, cfg.Server.Database.ConnectionString, !cfg.Server.System.IsProd)
	if err != nil {
		l.Fatal("error initializing database", zap.Error(err))
	}
	l.Info("tables created")

	// 插入默认数据
	configs := store.NewConfigStore(db, nil, l)
	accounts := store.NewAccountStore(db, l)
	if err = serverinits.InitData(context.Background(), configs, accounts, username, password, l); err != nil {
		l.Fatal("error initializing data", zap.Error(err))
	}
	l.Info("default data inserted")

	fmt.Println()
	fmt.Println("数据库初始化完成！")
	fmt.Printf("  用户名: %s\n", username)
	if usingDefault {
		fmt.Printf("  密码: %s （请登录后尽快修改）\n", defaultAdminPassword)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
