package database

import (
	"fmt"
	"log"
	"os"

	"github.com/SlpAus/football-pool-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是全局的GORM数据库句柄，供项目其他部分使用
var DB *gorm.DB

// InitDB 初始化数据库连接
func InitDB(cfg config.SqliteConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	// 连接到SQLite数据库
	DB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: newLogger,
	})

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}
