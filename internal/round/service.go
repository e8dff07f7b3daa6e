package round

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/internal/team"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixture Store向外暴露的预期业务条件。
// 调用方（投注和结算）必须把前两者当作"投注不可用"处理，而不是重试。
var (
	ErrNoActiveRound        = errors.New("no active round")
	ErrMultipleActiveRounds = errors.New("multiple active rounds")
	ErrInvalidRoundSize     = errors.New("a round must contain exactly ten games")
	ErrActiveRoundExists    = errors.New("an active round already exists")
	ErrInvalidTeamPair      = errors.New("each game needs two distinct existing teams")
	ErrDeadlineNotInFuture  = errors.New("the betting deadline must be in the future")
)

// GameSetup 描述开轮次时一场比赛的两支球队。
type GameSetup struct {
	HomeTeamID uint
	AwayTeamID uint
}

// GetActiveRound 返回唯一的活动轮次，包含十场比赛及其球队信息。
// 活动轮次数量为零或大于一时返回对应的业务条件；这两种状态是可报告的，不是崩溃。
func GetActiveRound() (*Round, error) {
	var rounds []Round
	err := database.DB.
		Preload("Games", func(db *gorm.DB) *gorm.DB {
			return db.Order("games.position asc")
		}).
		Preload("Games.HomeTeam").
		Preload("Games.AwayTeam").
		Where("is_active = ?", true).
		Find(&rounds).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询活动轮次: %w", err)
	}

	switch len(rounds) {
	case 0:
		return nil, ErrNoActiveRound
	case 1:
		return &rounds[0], nil
	default:
		return nil, ErrMultipleActiveRounds
	}
}

// GetRoundByID 按主键加载轮次及其比赛，供结算引擎使用。
func GetRoundByID(tx *gorm.DB, roundID uint) (*Round, error) {
	var r Round
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Games", func(db *gorm.DB) *gorm.DB {
			return db.Order("games.position asc")
		}).
		First(&r, roundID).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// OpenRound 创建一个新的活动轮次。
// 必须恰好提供十场比赛；存在活动轮次时拒绝创建——检查和插入在同一个
// 事务中完成，SQLite对写事务的串行化保证了单活动轮次不变量。
func OpenRound(number int, betsAcceptedBy time.Time, games []GameSetup) (*Round, error) {
	if len(games) != RoundSize {
		return nil, ErrInvalidRoundSize
	}
	if !betsAcceptedBy.After(time.Now()) {
		return nil, ErrDeadlineNotInFuture
	}

	newRound := Round{
		Number:         number,
		BetsAcceptedBy: betsAcceptedBy,
		IsActive:       true,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 单活动轮次不变量：已有活动轮次时拒绝
		var activeCount int64
		if err := tx.Model(&Round{}).Where("is_active = ?", true).Count(&activeCount).Error; err != nil {
			return fmt.Errorf("无法统计活动轮次: %w", err)
		}
		if activeCount > 0 {
			return ErrActiveRoundExists
		}

		// 2. 校验每场比赛引用两支不同的、存在的球队
		teamIDs := make(map[uint]bool, RoundSize*2)
		for _, g := range games {
			if g.HomeTeamID == g.AwayTeamID || g.HomeTeamID == 0 || g.AwayTeamID == 0 {
				return ErrInvalidTeamPair
			}
			teamIDs[g.HomeTeamID] = true
			teamIDs[g.AwayTeamID] = true
		}
		ids := make([]uint, 0, len(teamIDs))
		for id := range teamIDs {
			ids = append(ids, id)
		}
		var teamCount int64
		if err := tx.Model(&team.Team{}).Where("id IN ?", ids).Count(&teamCount).Error; err != nil {
			return fmt.Errorf("无法校验球队: %w", err)
		}
		if teamCount != int64(len(ids)) {
			return ErrInvalidTeamPair
		}

		// 3. 创建轮次和十场比赛
		for i, g := range games {
			newRound.Games = append(newRound.Games, Game{
				Position:   i + 1,
				HomeTeamID: g.HomeTeamID,
				AwayTeamID: g.AwayTeamID,
			})
		}
		if err := tx.Create(&newRound).Error; err != nil {
			return fmt.Errorf("无法创建轮次: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &newRound, nil
}
