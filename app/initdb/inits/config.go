package inits

import (
	"flag"
	"fmt"
	"hello-world-site/app/initdb/config"
	serverinits "hello-world-site/app/server/inits"
	"os"
)

func Config(args []string) (*config.Config, error) {
	var cfg config.Config

	fs := flag.NewFlagSet("initdb", flag.ContinueOnError)
	fs.BoolVar(&cfg.AssumeYes, "y", false, "skip the confirmation prompt")
	fs.StringVar(&cfg.Password, "password", "", "admin password (default: $ADMIN_PASSWORD, or prompt)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 命令行参数优先，其次是环境变量
	if cfg.Password == "" {
		if password, exist := os.LookupEnv("ADMIN_PASSWORD"); exist {
			cfg.Password = password
		}
	}

	server, err := serverinits.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	cfg.Server = server

	return &cfg, nil
}
