package standings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/internal/team"
	"github.com/SlpAus/football-pool-backend/internal/user"
)

// 积分榜为空是预期业务条件，不是错误
var (
	ErrNoClubsPlayed = errors.New("no club has played a game yet")
	ErrNoBettors     = errors.New("no users are betting yet")
)

// ClubStandings 返回联赛积分榜：积分降序，净胜球降序作为决胜，
// 仍然持平的保持输入顺序不变。排名在每次读取时重新计算，从不缓存。
func ClubStandings() ([]team.TeamStats, error) {
	var table []team.TeamStats
	err := database.DB.
		Preload("Team").
		Order("id asc").
		Find(&table).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询球队统计: %w", err)
	}
	if len(table) == 0 {
		return nil, ErrNoClubsPlayed
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].GoalDifference() > table[j].GoalDifference()
	})
	return table, nil
}

// BettorStandings 返回投注者积分榜：积分降序，之后依次用
// 符号命中数和精确比分命中数降序决胜。
func BettorStandings() ([]user.User, error) {
	var bettors []user.User
	if err := database.DB.Order("id asc").Find(&bettors).Error; err != nil {
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}
	if len(bettors) == 0 {
		return nil, ErrNoBettors
	}

	sort.SliceStable(bettors, func(i, j int) bool {
		if bettors[i].Points != bettors[j].Points {
			return bettors[i].Points > bettors[j].Points
		}
		if bettors[i].GuessedSigns != bettors[j].GuessedSigns {
			return bettors[i].GuessedSigns > bettors[j].GuessedSigns
		}
		return bettors[i].GuessedScores > bettors[j].GuessedScores
	})
	return bettors, nil
}
