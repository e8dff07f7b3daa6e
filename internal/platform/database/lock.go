package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseLockScript 只在锁的持有者是自己时才删除锁，避免误删他人在超时后重新获取的锁。
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

// Lock 代表一把已经持有的Redis咨询锁。
type Lock struct {
	key   string
	owner string
}

// AcquireLock 尝试获取一把带TTL的Redis咨询锁。
// 获取失败（已被他人持有）时返回 (nil, nil)；Redis错误时返回非nil错误。
func AcquireLock(key string, ttl time.Duration) (*Lock, error) {
	owner := uuid.NewString()
	ok, err := RDB.SetNX(Ctx, key, owner, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("无法获取Redis锁 %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	return &Lock{key: key, owner: owner}, nil
}

// Release 释放锁。释放失败只打印警告：TTL最终会兜底回收。
func (l *Lock) Release() {
	if l == nil {
		return
	}
	if err := releaseLockScript.Run(Ctx, RDB, []string{l.key}, l.owner).Err(); err != nil {
		fmt.Printf("警告: 释放Redis锁 %s 失败: %v\n", l.key, err)
	}
}
