package inits

import (
	"fmt"
	"github.com/joho/godotenv"
	"hello-world-site/app/server/config"
	"hello-world-site/app/server/constants"
	"net"
	"os"
	"strconv"
	"strings"
)

const devSecretKey = "dev-secret-key-change-in-production"

func Config() (*config.Config, error) {
	// 读取 .env ，文件不存在时忽略
	_ = godotenv.Load()

	var cfg config.Config

	{
		mode, exist := lookupEnv("MODE")
		if !exist {
			mode, exist = lookupEnv("APP_ENV")
		}
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := lookupEnv("LISTEN"); exist {
		cfg.System.Listen = listen
	} else {
		cfg.System.Listen = net.JoinHostPort(envOr("HOST", "0.0.0.0"), envOr("PORT", "5000"))
	}

	if reload, exist := lookupEnv("RELOAD"); exist {
		b, err := strconv.ParseBool(reload)
		if err != nil {
			return nil, fmt.Errorf("RELOAD should be a boolean")
		}
		cfg.System.Debug = b
	}

	if workers, exist := lookupEnv("WORKERS"); exist {
		n, err := strconv.Atoi(workers)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("WORKERS should be a non-negative integer")
		}
		cfg.System.Workers = n
	}

	cfg.System.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))

	cfg.System.CORSOrigins = []string{"*"}
	if origins := os.Getenv("CORS_ORIGINS"); strings.TrimSpace(origins) != "" {
		cfg.System.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.System.CORSOrigins = append(cfg.System.CORSOrigins, o)
			}
		}
	}

	// 数据库
	cfg.Database.Driver = strings.ToLower(envOr("DB_DRIVER", config.DBDriverPostgres))
	switch cfg.Database.Driver {
	case config.DBDriverPostgres:
		if dbconn, exist := lookupEnv("DB_CONN"); exist {
			cfg.Database.ConnectionString = dbconn
		} else {
			cfg.Database.ConnectionString = fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
				envOr("DB_HOST", "localhost"),
				envOr("DB_PORT", "5432"),
				envOr("DB_USER", "postgres"),
				os.Getenv("DB_PASSWORD"),
				envOr("DB_NAME", "hello_world"),
				envOr("DB_SSLMODE", "disable"),
			)
		}
	case config.DBDriverSqlite:
		if dbconn, exist := lookupEnv("DB_CONN"); exist {
			cfg.Database.ConnectionString = dbconn
		} else {
			cfg.Database.ConnectionString = envOr("DB_PATH", "hello_world.db")
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.Database.Driver)
	}

	cfg.Database.RedisConnectionString = os.Getenv("REDIS_CONN")

	// 安全
	if sk, exist := lookupEnv("SECRET_KEY"); exist {
		cfg.Security.SecretKey = sk
	} else if cfg.System.IsProd {
		return nil, fmt.Errorf("SECRET_KEY environment variable must be set in production")
	} else {
		cfg.Security.SecretKey = devSecretKey
	}

	cfg.Security.AuthMode = strings.ToLower(envOr("AUTH_MODE", config.AuthModeToken))
	switch cfg.Security.AuthMode {
	case config.AuthModeToken:
	case config.AuthModeSession:
		if cfg.Database.RedisConnectionString == "" {
			return nil, fmt.Errorf("REDIS_CONN environment variable not set, required by session auth mode")
		}
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE: %s", cfg.Security.AuthMode)
	}

	cfg.Security.AdminUsername = envOr("ADMIN_USERNAME", constants.DefaultAdminUsername)

	if req, exist := lookupEnv("LOGIN_REQUIRE_USERNAME"); exist {
		b, err := strconv.ParseBool(req)
		if err != nil {
			return nil, fmt.Errorf("LOGIN_REQUIRE_USERNAME should be a boolean")
		}
		cfg.Security.LoginRequireUsername = b
	}

	cfg.Bootstrap.AdminPassword = envOr("ADMIN_PASSWORD", "admin123")

	return &cfg, nil
}

// lookupEnv 空值视为未设置
func lookupEnv(key string) (string, bool) {
	v, exist := os.LookupEnv(key)
	return v, exist && v != ""
}

func envOr(key, fallback string) string {
	if v, exist := lookupEnv(key); exist {
		return v
	}
	return fallback
}
