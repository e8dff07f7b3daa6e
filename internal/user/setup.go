package user

import (
	"fmt"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
)

// PrimeModule 负责user模块的数据库迁移和初始数据
func PrimeModule(adminPassword string) error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	if err := SeedAdminUser(adminPassword); err != nil {
		return err
	}
	fmt.Println("User数据库表迁移成功。")
	return nil
}
