package database

import (
	"fmt"
	"sync"
)

// statusManager 负责线程安全地管理和提供Redis的健康状态。
// 投注提交和结算这类写操作依赖Redis咨询锁，在Redis不可用时需要整体降级。
type statusManager struct {
	mu             sync.RWMutex
	isRedisHealthy bool
}

// 全局的状态管理器实例
var globalStatus = &statusManager{
	isRedisHealthy: true, // 默认启动时是健康的
}

// IsRedisHealthy 返回当前Redis的健康状态。
func IsRedisHealthy() bool {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.isRedisHealthy
}

// UpdateStatus 用于线程安全地更新健康状态。
func UpdateStatus(isHealthy bool) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()

	// 只有当状态发生变化时才打印日志
	if globalStatus.isRedisHealthy != isHealthy {
		globalStatus.isRedisHealthy = isHealthy
		if isHealthy {
			fmt.Println("健康检查: Redis服务状态已更新为 [可用]")
		} else {
			fmt.Println("健康检查警告: Redis服务状态已更新为 [不可用]")
		}
	}
}
