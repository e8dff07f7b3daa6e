package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/football-pool-backend/api"
	"github.com/SlpAus/football-pool-backend/internal/platform/config"
	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/internal/platform/health"
	"github.com/SlpAus/football-pool-backend/internal/platform/shutdown"
	"github.com/SlpAus/football-pool-backend/internal/platform/startup"
	"github.com/SlpAus/football-pool-backend/pkg/lifecycle"
	"github.com/SlpAus/football-pool-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置并初始化基础设施
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("配置加载失败，无法启动: %v", err))
	}
	token.Configure(cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)
	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 2. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(cfg); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 4. 异步启动后台的持续健康检查器
	manager := lifecycle.NewManager()
	healthHandle, err := manager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(fmt.Sprintf("无法注册后台服务: %v", err))
	}
	go health.StartRedisHealthCheck(healthHandle)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 5. 阻塞等待停机信号
	coordinator := shutdown.NewCoordinator(manager)
	coordinator.ListenForSignalsAndShutdown(server)
}
