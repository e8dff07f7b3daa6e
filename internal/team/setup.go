package team

import (
	"fmt"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
)

// seedTeams 是初始的球队参考数据。只在球队表为空时写入。
var seedTeams = []Team{
	{Name: "Arsenal", ShortName: "ARS"},
	{Name: "Aston Villa", ShortName: "AVL"},
	{Name: "Bournemouth", ShortName: "BOU"},
	{Name: "Brentford", ShortName: "BRE"},
	{Name: "Brighton", ShortName: "BHA"},
	{Name: "Chelsea", ShortName: "CHE"},
	{Name: "Crystal Palace", ShortName: "CRY"},
	{Name: "Everton", ShortName: "EVE"},
	{Name: "Fulham", ShortName: "FUL"},
	{Name: "Liverpool", ShortName: "LIV"},
	{Name: "Manchester City", ShortName: "MCI"},
	{Name: "Manchester United", ShortName: "MUN"},
	{Name: "Newcastle United", ShortName: "NEW"},
	{Name: "Nottingham Forest", ShortName: "NFO"},
	{Name: "Southampton", ShortName: "SOU"},
	{Name: "Tottenham Hotspur", ShortName: "TOT"},
	{Name: "West Ham United", ShortName: "WHU"},
	{Name: "Wolves", ShortName: "WOL"},
	{Name: "Leicester City", ShortName: "LEI"},
	{Name: "Ipswich Town", ShortName: "IPS"},
}

// PrimeModule 负责team模块的数据库迁移和球队种子数据
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&Team{}, &TeamStats{}); err != nil {
		return fmt.Errorf("无法迁移team表: %w", err)
	}

	var count int64
	if err := database.DB.Model(&Team{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计球队数量: %w", err)
	}
	if count == 0 {
		if err := database.DB.Create(&seedTeams).Error; err != nil {
			return fmt.Errorf("无法写入球队种子数据: %w", err)
		}
		fmt.Printf("已写入 %d 支球队的种子数据。\n", len(seedTeams))
	}

	fmt.Println("Team数据库表迁移成功。")
	return nil
}
