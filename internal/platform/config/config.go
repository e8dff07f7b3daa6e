package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite数据库文件的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig 定义了认证相关的配置
type AuthConfig struct {
	// JwtSecret 是签发Bearer Token所用的HMAC密钥。
	// 留空时会在启动阶段生成一个随机密钥（重启后已签发的Token全部失效）。
	JwtSecret string `mapstructure:"jwtSecret"`

	// TokenTTL 是Token的有效期
	TokenTTL time.Duration `mapstructure:"tokenTTL"`

	// AdminPassword 是首次启动时种子管理员账户的初始密码
	AdminPassword string `mapstructure:"adminPassword"`
}

// ScoringConfig 定义了结算时的计分权重。
// 这两个值是策略配置，不允许以魔法数字的形式散落在调用点。
type ScoringConfig struct {
	// ExactScorePoints 是比分完全猜中时获得的积分
	ExactScorePoints int `mapstructure:"exactScorePoints"`

	// SignMatchPoints 是只猜中胜负符号时获得的积分，必须严格小于ExactScorePoints
	SignMatchPoints int `mapstructure:"signMatchPoints"`
}

// setDefaults 注册所有配置项的默认值，保证在没有配置文件时服务也能启动
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})

	v.SetDefault("database.sqlite.path", "football-pool.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)

	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.tokenTTL", (24 * time.Hour).String())
	v.SetDefault("auth.adminPassword", "admin")

	v.SetDefault("scoring.exactScorePoints", 3)
	v.SetDefault("scoring.signMatchPoints", 1)
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config") // 文件名 (不带扩展名)
	v.SetConfigType("yaml")   // 文件类型

	// 2. 添加配置文件搜索路径
	// 可以添加多个路径，Viper会按顺序查找
	v.AddConfigPath("./config") // `config/config.yaml`
	v.AddConfigPath(".")        // `./config.yaml` (如果在根目录)

	// 3. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 注册默认值
	setDefaults(v)

	// 5. 读取配置文件；文件不存在时使用默认值启动，其他错误则上报
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
		fmt.Println("未找到配置文件，使用默认配置启动。")
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 校验计分权重：比分全中的权重必须严格大于只中符号的权重
	if cfg.Scoring.ExactScorePoints <= cfg.Scoring.SignMatchPoints {
		return nil, fmt.Errorf("无效的计分配置: exactScorePoints(%d) 必须大于 signMatchPoints(%d)",
			cfg.Scoring.ExactScorePoints, cfg.Scoring.SignMatchPoints)
	}

	// 8. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}
