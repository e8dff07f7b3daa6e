package health

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// PerformCheck 执行一次Redis健康检查并更新全局状态。
func PerformCheck() {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()

	if err := database.RDB.Ping(ctx).Err(); err != nil {
		database.UpdateStatus(false)
		return
	}
	database.UpdateStatus(true)
}

// StartRedisHealthCheck 启动一个后台Goroutine来定期、阻塞式地执行健康检查。
// 它通过生命周期句柄响应停机信号。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已停止。")
			return
		}
		PerformCheck()
	}
}
