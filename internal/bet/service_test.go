package bet

import (
	"fmt"
	"testing"
	"time"

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

// setupTestDB 为每个测试创建独立的内存数据库，返回一个开放投注的活动轮次。
func setupTestDB(t *testing.T, deadline time.Time) *round.Round {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&team.Team{}, &round.Round{}, &round.Game{}, &user.User{}, &Bet{}))
	database.DB = db

	for i := 1; i <= 20; i++ {
		require.NoError(t, db.Create(&team.Team{
			Name:      fmt.Sprintf("Team %02d", i),
			ShortName: fmt.Sprintf("T%02d", i),
		}).Error)
	}

	activeRound := &round.Round{Number: 1, BetsAcceptedBy: deadline, IsActive: true}
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

// predictionsFor 为轮次的每场比赛构造相同比分的预测。
func predictionsFor(r *round.Round, home, away int) []Prediction {
	predictions := make([]Prediction, 0, len(r.Games))
	for _, g := range r.Games {
		predictions = append(predictions, Prediction{GameID: g.ID, HomeGoals: home, AwayGoals: away})
	}
	return predictions
}

func TestPlaceBetsHappyPath(t *testing.T) {
	activeRound := setupTestDB(t, time.Now().Add(time.Hour))

	require.NoError(t, PlaceBets(42, predictionsFor(activeRound, 2, 1)))

	bets, err := GetUserBetsForRound(42, activeRound.ID)
	require.NoError(t, err)
	require.Len(t, bets, round.RoundSize)
	for _, b := range bets {
		assert.Equal(t, 2, b.HomeGoals)
		assert.Equal(t, 1, b.AwayGoals)
		// 符号由服务端推导
		assert.Equal(t, round.SignHome, b.Sign)
	}
}

func TestPlaceBetsReplacesPreviousSubmission(t *testing.T) {
	activeRound := setupTestDB(t, time.Now().Add(time.Hour))

	require.NoError(t, PlaceBets(42, predictionsFor(activeRound, 2, 1)))
	require.NoError(t, PlaceBets(42, predictionsFor(activeRound, 0, 0)))

	// 第二次提交整体替换第一次：恰好十条记录，内容全部来自第二次
	var count int64
	require.NoError(t, database.DB.Model(&Bet{}).Where("user_id = ?", 42).Count(&count).Error)
	assert.EqualValues(t, round.RoundSize, count)

	bets, err := GetUserBetsForRound(42, activeRound.ID)
	require.NoError(t, err)
	for _, b := range bets {
		assert.Equal(t, 0, b.HomeGoals)
		assert.Equal(t, 0, b.AwayGoals)
		assert.Equal(t, round.SignDraw, b.Sign)
	}
}

func TestPlaceBetsAfterDeadline(t *testing.T) {
	activeRound := setupTestDB(t, time.Now().Add(-time.Minute))

	err := PlaceBets(42, predictionsFor(activeRound, 1, 0))
	assert.ErrorIs(t, err, ErrBettingClosed)
}

func TestPlaceBetsIncompleteSubmission(t *testing.T) {
	activeRound := setupTestDB(t, time.Now().Add(time.Hour))
	full := predictionsFor(activeRound, 1, 1)

	// 少于十场
	assert.ErrorIs(t, PlaceBets(42, full[:9]), ErrIncompleteSubmission)

	// 场数正确但有重复
	dup := append([]Prediction{}, full[:9]...)
	dup = append(dup, full[0])
	assert.ErrorIs(t, PlaceBets(42, dup), ErrIncompleteSubmission)

	// 引用了不属于本轮的比赛
	foreign := append([]Prediction{}, full[:9]...)
	foreign = append(foreign, Prediction{GameID: 9999, HomeGoals: 1, AwayGoals: 1})
	assert.ErrorIs(t, PlaceBets(42, foreign), ErrIncompleteSubmission)

	// 负数比分
	invalid := predictionsFor(activeRound, 1, 1)
	invalid[5].AwayGoals = -1
	assert.ErrorIs(t, PlaceBets(42, invalid), ErrInvalidGoals)

	// 失败的提交不应留下任何记录
	var count int64
	require.NoError(t, database.DB.Model(&Bet{}).Where("user_id = ?", 42).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestPlaceBetsWithoutActiveRound(t *testing.T) {
	activeRound := setupTestDB(t, time.Now().Add(time.Hour))
	require.NoError(t, database.DB.Model(&round.Round{}).Where("id = ?", activeRound.ID).Update("is_active", false).Error)

	err := PlaceBets(42, predictionsFor(activeRound, 1, 0))
	assert.ErrorIs(t, err, round.ErrNoActiveRound)
}
