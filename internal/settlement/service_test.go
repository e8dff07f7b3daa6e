package settlement

import (
	"fmt"
	"testing"
	"time"

	"github.com/SlpAus/football-pool-backend/internal/bet"
	"github.com/SlpAus/football-pool-backend/internal/platform/config"
	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/internal/round"
	"github.com/SlpAus/football-pool-backend/internal/team"
	"github.com/SlpAus/football-pool-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 为每个测试创建独立的内存数据库：20支球队、一个活动轮次和三个用户。
// 计分权重固定为 比分全中3分 / 符号命中1分。
func setupTestDB(t *testing.T) *round.Round {
	t.Helper()

	config.Cfg = &config.Config{
		Scoring: config.ScoringConfig{ExactScorePoints: 3, SignMatchPoints: 1},
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&team.Team{}, &team.TeamStats{},
		&round.Round{}, &round.Game{},
		&user.User{}, &bet.Bet{},
	))
	database.DB = db

	for i := 1; i <= 20; i++ {
		require.NoError(t, db.Create(&team.Team{
			Name:      fmt.Sprintf("Team %02d", i),
			ShortName: fmt.Sprintf("T%02d", i),
		}).Error)
	}
	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, db.Create(&user.User{
			Username: name,
			Email:    name + "@example.com",
		}).Error)
	}

	activeRound := &round.Round{Number: 1, BetsAcceptedBy: time.Now().Add(-time.Minute), IsActive: true}
	for i := 0; i < round.RoundSize; i++ {
		activeRound.Games = append(activeRound.Games, round.Game{
			Position:   i + 1,
			HomeTeamID: uint(2*i + 1),
			AwayTeamID: uint(2*i + 2),
		})
	}
	require.NoError(t, db.Create(activeRound).Error)
	return activeRound
}

// placeBetsDirect 绕过投注窗口检查，直接为用户写入整轮相同比分的预测。
func placeBetsDirect(t *testing.T, r *round.Round, userID uint, home, away int) {
	t.Helper()
	for _, g := range r.Games {
		require.NoError(t, database.DB.Create(&bet.Bet{
			UserID:    userID,
			GameID:    g.ID,
			HomeGoals: home,
			AwayGoals: away,
			Sign:      round.DeriveSign(home, away),
		}).Error)
	}
}

// resultsFor 为轮次的每场比赛构造相同的官方比分。
func resultsFor(r *round.Round, home, away int) []GameResult {
	results := make([]GameResult, 0, len(r.Games))
	for _, g := range r.Games {
		results = append(results, GameResult{GameID: g.ID, HomeGoals: home, AwayGoals: away})
	}
	return results
}

func loadUser(t *testing.T, username string) user.User {
	t.Helper()
	var u user.User
	require.NoError(t, database.DB.Where("username = ?", username).First(&u).Error)
	return u
}

func TestSettleRoundScoring(t *testing.T) {
	activeRound := setupTestDB(t)

	// alice全部比分全中，bob只中符号，carol全部猜错方向
	placeBetsDirect(t, activeRound, 1, 2, 1)
	placeBetsDirect(t, activeRound, 2, 3, 0)
	placeBetsDirect(t, activeRound, 3, 0, 2)

	require.NoError(t, SettleRound(activeRound.ID, resultsFor(activeRound, 2, 1)))

	alice := loadUser(t, "alice")
	assert.Equal(t, 10, alice.GuessedScores)
	assert.Equal(t, 10, alice.GuessedSigns)
	assert.Equal(t, 30, alice.Points)

	bob := loadUser(t, "bob")
	assert.Equal(t, 0, bob.GuessedScores)
	assert.Equal(t, 10, bob.GuessedSigns)
	assert.Equal(t, 10, bob.Points)

	carol := loadUser(t, "carol")
	assert.Equal(t, 0, carol.GuessedScores)
	assert.Equal(t, 0, carol.GuessedSigns)
	assert.Equal(t, 0, carol.Points)

	// 轮次被一次性关闭，官方赛果已写入
	var settled round.Round
	require.NoError(t, database.DB.Preload("Games").First(&settled, activeRound.ID).Error)
	assert.False(t, settled.IsActive)
	require.NotNil(t, settled.SettledAt)
	for _, g := range settled.Games {
		require.NotNil(t, g.HomeGoals)
		require.NotNil(t, g.AwayGoals)
		assert.Equal(t, 2, *g.HomeGoals)
		assert.Equal(t, 1, *g.AwayGoals)
	}
}

func TestSettleRoundUpdatesTeamStats(t *testing.T) {
	activeRound := setupTestDB(t)

	require.NoError(t, SettleRound(activeRound.ID, resultsFor(activeRound, 2, 1)))

	// 主队胜: 胜1场积3分; 客队负: 0分
	var home team.TeamStats
	require.NoError(t, database.DB.Where("team_id = ?", activeRound.Games[0].HomeTeamID).First(&home).Error)
	assert.Equal(t, 1, home.GamesPlayed)
	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 2, home.GoalsScored)
	assert.Equal(t, 1, home.GoalsConceded)
	assert.Equal(t, 3, home.Points)

	var away team.TeamStats
	require.NoError(t, database.DB.Where("team_id = ?", activeRound.Games[0].AwayTeamID).First(&away).Error)
	assert.Equal(t, 1, away.GamesPlayed)
	assert.Equal(t, 1, away.Losses)
	assert.Equal(t, 1, away.GoalsScored)
	assert.Equal(t, 2, away.GoalsConceded)
	assert.Equal(t, 0, away.Points)
}

func TestSettleRoundDrawGivesBothClubsOnePoint(t *testing.T) {
	activeRound := setupTestDB(t)

	require.NoError(t, SettleRound(activeRound.ID, resultsFor(activeRound, 1, 1)))

	for _, teamID := range []uint{activeRound.Games[0].HomeTeamID, activeRound.Games[0].AwayTeamID} {
		var stats team.TeamStats
		require.NoError(t, database.DB.Where("team_id = ?", teamID).First(&stats).Error)
		assert.Equal(t, 1, stats.Draws)
		assert.Equal(t, 1, stats.Points)
	}
}

func TestSettleRoundIsIdempotent(t *testing.T) {
	activeRound := setupTestDB(t)
	placeBetsDirect(t, activeRound, 1, 2, 1)

	results := resultsFor(activeRound, 2, 1)
	require.NoError(t, SettleRound(activeRound.ID, results))
	assert.ErrorIs(t, SettleRound(activeRound.ID, results), ErrAlreadySettled)

	// 第二次调用不能改变任何累计数据
	alice := loadUser(t, "alice")
	assert.Equal(t, 30, alice.Points)

	var stats team.TeamStats
	require.NoError(t, database.DB.Where("team_id = ?", activeRound.Games[0].HomeTeamID).First(&stats).Error)
	assert.Equal(t, 1, stats.GamesPlayed)
}

func TestSettleRoundValidation(t *testing.T) {
	activeRound := setupTestDB(t)
	results := resultsFor(activeRound, 1, 0)

	assert.ErrorIs(t, SettleRound(9999, results), ErrRoundNotFound)
	assert.ErrorIs(t, SettleRound(activeRound.ID, results[:9]), ErrInvalidResults)

	// 场数正确但有重复
	dup := append([]GameResult{}, results[:9]...)
	dup = append(dup, results[0])
	assert.ErrorIs(t, SettleRound(activeRound.ID, dup), ErrInvalidResults)

	// 负数比分
	invalid := resultsFor(activeRound, 1, 0)
	invalid[2].AwayGoals = -1
	assert.ErrorIs(t, SettleRound(activeRound.ID, invalid), ErrInvalidResults)

	// 引用了不属于本轮的比赛
	foreign := append([]GameResult{}, results[:9]...)
	foreign = append(foreign, GameResult{GameID: 9999, HomeGoals: 1, AwayGoals: 0})
	assert.ErrorIs(t, SettleRound(activeRound.ID, foreign), ErrInvalidResults)

	// 校验失败不应留下部分写入
	var settled round.Round
	require.NoError(t, database.DB.First(&settled, activeRound.ID).Error)
	assert.True(t, settled.IsActive)
	assert.Nil(t, settled.SettledAt)
}
