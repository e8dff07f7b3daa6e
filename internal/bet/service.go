package bet

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/internal/round"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Bet Ledger向外暴露的预期业务条件
var (
	ErrIncompleteSubmission = errors.New("all ten games need a complete score prediction")
	ErrBettingClosed        = errors.New("the betting window for this round has closed")
	ErrInvalidGoals         = errors.New("goal counts must be non-negative")
)

// Prediction 是一次提交中对一场比赛的预测。
type Prediction struct {
	GameID    uint
	HomeGoals int
	AwayGoals int
}

// PlaceBets 为用户写入一整轮的十条预测，采用整体替换语义：
// 重复提交会以第二次的内容完全覆盖第一次，绝不会出现两次提交的并集。
// 活动轮次缺失/多个的条件会原样传出，调用方应视为"投注不可用"。
func PlaceBets(userID uint, predictions []Prediction) error {
	// 1. 获取活动轮次并检查投注窗口
	activeRound, err := round.GetActiveRound()
	if err != nil {
		return err
	}
	if !activeRound.IsBettingOpen(time.Now()) {
		return ErrBettingClosed
	}

	// 2. 校验提交覆盖了本轮的每一场比赛，且比分完整合法
	if len(predictions) != round.RoundSize {
		return ErrIncompleteSubmission
	}
	gamesInRound := make(map[uint]bool, round.RoundSize)
	for _, g := range activeRound.Games {
		gamesInRound[g.ID] = true
	}
	seen := make(map[uint]bool, round.RoundSize)
	for _, p := range predictions {
		if !gamesInRound[p.GameID] || seen[p.GameID] {
			return ErrIncompleteSubmission
		}
		if p.HomeGoals < 0 || p.AwayGoals < 0 {
			return ErrInvalidGoals
		}
		seen[p.GameID] = true
	}

	// 3. 在单个事务中对十条记录做以(user_id, game_id)为键的upsert
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, p := range predictions {
			newBet := Bet{
				UserID:    userID,
				GameID:    p.GameID,
				HomeGoals: p.HomeGoals,
				AwayGoals: p.AwayGoals,
				Sign:      round.DeriveSign(p.HomeGoals, p.AwayGoals),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"home_goals", "away_goals", "sign", "updated_at"}),
			}).Create(&newBet).Error
			if err != nil {
				return fmt.Errorf("无法写入预测: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// GetUserBetsForRound 返回用户在指定轮次的全部预测，按比赛位置排序。
// 既用于预填充重复提交的表单，也被结算引擎使用。
func GetUserBetsForRound(userID, roundID uint) ([]Bet, error) {
	var bets []Bet
	err := database.DB.
		Joins("JOIN games ON games.id = bets.game_id").
		Where("bets.user_id = ? AND games.round_id = ?", userID, roundID).
		Order("games.position asc").
		Find(&bets).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询用户预测: %w", err)
	}
	return bets, nil
}

// GetBetsForRound 返回指定轮次的全部预测，供结算引擎按用户聚合。
func GetBetsForRound(tx *gorm.DB, roundID uint) ([]Bet, error) {
	var bets []Bet
	err := tx.
		Joins("JOIN games ON games.id = bets.game_id").
		Where("games.round_id = ?", roundID).
		Find(&bets).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询轮次预测: %w", err)
	}
	return bets, nil
}
