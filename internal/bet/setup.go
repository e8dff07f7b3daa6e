package bet

import (
	"fmt"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
)

// PrimeModule 负责bet模块的数据库迁移
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&Bet{}); err != nil {
		return fmt.Errorf("无法迁移bet表: %w", err)
	}
	fmt.Println("Bet数据库表迁移成功。")
	return nil
}
