package settlement

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/football-pool-backend/internal/bet"
	"github.com/SlpAus/football-pool-backend/internal/platform/config"
	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/internal/round"
	"github.com/SlpAus/football-pool-backend/internal/team"
	"github.com/SlpAus/football-pool-backend/internal/user"
	"gorm.io/gorm"
)

// 结算引擎向外暴露的预期业务条件
var (
	ErrRoundNotFound  = errors.New("round not found")
	ErrAlreadySettled = errors.New("round already settled")
	ErrRoundNotActive = errors.New("round is not active")
	ErrInvalidResults = errors.New("final scores must cover exactly the games of the round")
)

// 联赛积分的标准记分规则
const (
	clubWinPoints  = 3
	clubDrawPoints = 1
)

// GameResult 是一场比赛的官方最终比分。
type GameResult struct {
	GameID    uint
	HomeGoals int
	AwayGoals int
}

// totalsDelta 是结算过程中为单个用户累计的计数器增量。
// 十场比赛的增量先在内存中求和，再一次性写入，避免半程失败留下部分更新。
type totalsDelta struct {
	guessedScores int
	guessedSigns  int
	points        int
}

// SettleRound 把官方最终比分一次性转换为积分和计数器更新。
// 步骤1-4在同一个GORM事务中执行：写入赛果、按用户聚合投注命中、
// 更新球队赛季统计、把轮次标记为已结算。任何一步失败都会整体回滚，
// 重试是安全的；对同一轮次的第二次调用会得到 ErrAlreadySettled。
func SettleRound(roundID uint, results []GameResult) error {
	// 0. 入参形状校验，拒绝任何写入之前完成
	if len(results) != round.RoundSize {
		return ErrInvalidResults
	}
	resultByGame := make(map[uint]GameResult, round.RoundSize)
	for _, res := range results {
		if res.HomeGoals < 0 || res.AwayGoals < 0 {
			return ErrInvalidResults
		}
		if _, dup := resultByGame[res.GameID]; dup {
			return ErrInvalidResults
		}
		resultByGame[res.GameID] = res
	}

	scoring := config.Cfg.Scoring

	return database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 锁定轮次行并执行幂等性守卫
		settledRound, err := round.GetRoundByID(tx, roundID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}
			return fmt.Errorf("无法加载轮次: %w", err)
		}
		if settledRound.SettledAt != nil {
			return ErrAlreadySettled
		}
		if !settledRound.IsActive {
			return ErrRoundNotActive
		}

		// 2. 校验提交的比分恰好覆盖本轮的每一场比赛
		for _, g := range settledRound.Games {
			if _, ok := resultByGame[g.ID]; !ok {
				return ErrInvalidResults
			}
		}

		// 3. 写入官方赛果，并推导每场比赛的官方符号
		signByGame := make(map[uint]round.Sign, round.RoundSize)
		for i := range settledRound.Games {
			g := &settledRound.Games[i]
			res := resultByGame[g.ID]
			homeGoals, awayGoals := res.HomeGoals, res.AwayGoals

			if err := tx.Model(g).Updates(map[string]interface{}{
				"home_goals": homeGoals,
				"away_goals": awayGoals,
			}).Error; err != nil {
				return fmt.Errorf("无法写入比赛赛果: %w", err)
			}
			signByGame[g.ID] = round.DeriveSign(homeGoals, awayGoals)
		}

		// 4. 按用户聚合投注命中：先在内存中累计每个用户的增量
		bets, err := bet.GetBetsForRound(tx, roundID)
		if err != nil {
			return err
		}
		deltaByUser := make(map[uint]*totalsDelta)
		for _, b := range bets {
			res := resultByGame[b.GameID]
			delta := deltaByUser[b.UserID]
			if delta == nil {
				delta = &totalsDelta{}
				deltaByUser[b.UserID] = delta
			}

			exactMatch := b.HomeGoals == res.HomeGoals && b.AwayGoals == res.AwayGoals
			signMatch := b.Sign == signByGame[b.GameID]
			switch {
			case exactMatch:
				// 比分全中同时计入符号命中
				delta.guessedScores++
				delta.guessedSigns++
				delta.points += scoring.ExactScorePoints
			case signMatch:
				delta.guessedSigns++
				delta.points += scoring.SignMatchPoints
			}
		}

		// 5. 每个用户只做一次写入
		for userID, delta := range deltaByUser {
			if delta.guessedSigns == 0 && delta.guessedScores == 0 {
				continue
			}
			err := tx.Model(&user.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
				"guessed_scores": gorm.Expr("guessed_scores + ?", delta.guessedScores),
				"guessed_signs":  gorm.Expr("guessed_signs + ?", delta.guessedSigns),
				"points":         gorm.Expr("points + ?", delta.points),
			}).Error
			if err != nil {
				return fmt.Errorf("无法更新用户累计数据: %w", err)
			}
		}

		// 6. 更新两支参赛球队的赛季统计
		for _, g := range settledRound.Games {
			res := resultByGame[g.ID]
			sign := signByGame[g.ID]

			homeDelta := clubStatsDelta(res.HomeGoals, res.AwayGoals, sign == round.SignHome, sign == round.SignDraw)
			if err := applyClubStats(tx, g.HomeTeamID, homeDelta); err != nil {
				return err
			}
			awayDelta := clubStatsDelta(res.AwayGoals, res.HomeGoals, sign == round.SignAway, sign == round.SignDraw)
			if err := applyClubStats(tx, g.AwayTeamID, awayDelta); err != nil {
				return err
			}
		}

		// 7. 把轮次一次性标记为已结算，永不重新打开
		now := time.Now()
		err = tx.Model(&round.Round{}).Where("id = ?", roundID).Updates(map[string]interface{}{
			"is_active":  false,
			"settled_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("无法标记轮次为已结算: %w", err)
		}
		return nil
	})
}

// clubStats 是一场比赛给一支球队带来的统计增量。
type clubStats struct {
	wins, draws, losses int
	goalsScored         int
	goalsConceded       int
	points              int
}

// clubStatsDelta 按 胜3/平1/负0 的规则计算单场增量。
func clubStatsDelta(scored, conceded int, won, drew bool) clubStats {
	delta := clubStats{goalsScored: scored, goalsConceded: conceded}
	switch {
	case won:
		delta.wins = 1
		delta.points = clubWinPoints
	case drew:
		delta.draws = 1
		delta.points = clubDrawPoints
	default:
		delta.losses = 1
	}
	return delta
}

// applyClubStats 把单场增量累加到球队的赛季统计行。
// 一支球队的统计行在它第一次被结算到时才创建。
func applyClubStats(tx *gorm.DB, teamID uint, delta clubStats) error {
	stats := team.TeamStats{TeamID: teamID}
	if err := tx.Where(team.TeamStats{TeamID: teamID}).FirstOrCreate(&stats).Error; err != nil {
		return fmt.Errorf("无法加载球队统计: %w", err)
	}

	err := tx.Model(&stats).Updates(map[string]interface{}{
		"games_played":   gorm.Expr("games_played + 1"),
		"wins":           gorm.Expr("wins + ?", delta.wins),
		"draws":          gorm.Expr("draws + ?", delta.draws),
		"losses":         gorm.Expr("losses + ?", delta.losses),
		"goals_scored":   gorm.Expr("goals_scored + ?", delta.goalsScored),
		"goals_conceded": gorm.Expr("goals_conceded + ?", delta.goalsConceded),
		"points":         gorm.Expr("points + ?", delta.points),
	}).Error
	if err != nil {
		return fmt.Errorf("无法更新球队统计: %w", err)
	}
	return nil
}
