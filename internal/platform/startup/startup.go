package startup

import (
	"fmt"

	"github.com/SlpAus/football-pool-backend/internal/bet"
	"github.com/SlpAus/football-pool-backend/internal/platform/config"
	"github.com/SlpAus/football-pool-backend/internal/round"
	"github.com/SlpAus/football-pool-backend/internal/team"
	"github.com/SlpAus/football-pool-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口：
// 按依赖顺序迁移各模块的数据库表，并播种初始数据。
func InitializeApplication(cfg *config.Config) error {
	fmt.Println("开始应用首次初始化...")

	if err := user.PrimeModule(cfg.Auth.AdminPassword); err != nil {
		return err
	}
	if err := team.PrimeModule(); err != nil {
		return err
	}
	if err := round.PrimeModule(); err != nil {
		return err
	}
	if err := bet.PrimeModule(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
