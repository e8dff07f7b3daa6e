package round

import (
	"fmt"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
)

// PrimeModule 负责round模块的数据库迁移
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&Round{}, &Game{}); err != nil {
		return fmt.Errorf("无法迁移round表: %w", err)
	}
	fmt.Println("Round数据库表迁移成功。")
	return nil
}
