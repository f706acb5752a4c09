package inits

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"hello-world-site/app/server/config"
	"hello-world-site/app/server/models"
	"hello-world-site/app/server/store"
	"time"
)

func DB(driver string, conn string, debugMode bool) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = Open(driver, conn, debugMode); err != nil {
		return nil, err
	}

	// 迁移
	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

func Open(driver string, conn string, debugMode bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DBDriverPostgres:
		dialector = postgres.Open(conn)
	case config.DBDriverSqlite:
		dialector = sqlite.Open(conn)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", driver)
	}

	logLevel := logger.Silent
	if debugMode {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if driver == config.DBDriverSqlite {
		// sqlite 只允许单个写入者，内存数据库也依赖同一个连接
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ConfigEntry{},
		&models.AdminAccount{},
		&models.AccessLog{},
	)
}

// InitData 写入默认配置和管理员账号，已有的记录保持不变
func InitData(ctx context.Context, configs *store.ConfigStore, accounts *store.AccountStore, username string, password string, l *zap.Logger) error {
	// 初始化配置
	if err := configs.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("failed to init config: %w", err)
	}

	// 初始化管理员
	created, err := accounts.Create(ctx, username, password)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if created {
		l.Info("admin account created", zap.String("username", username))
	} else {
		l.Debug("admin account already exists, left untouched", zap.String("username", username))
	}

	return nil
}
