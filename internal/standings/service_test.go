package standings

import (
	"fmt"
	"testing"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/internal/team"
	"github.com/SlpAus/football-pool-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&team.Team{}, &team.TeamStats{}, &user.User{}))
	database.DB = db
}

func createTeamWithStats(t *testing.T, name string, points, scored, conceded int) {
	t.Helper()
	created := team.Team{Name: name, ShortName: name[:3]}
	require.NoError(t, database.DB.Create(&created).Error)
	require.NoError(t, database.DB.Create(&team.TeamStats{
		TeamID:        created.ID,
		Points:        points,
		GoalsScored:   scored,
		GoalsConceded: conceded,
	}).Error)
}

func TestClubStandingsOrdering(t *testing.T) {
	setupTestDB(t)

	// 积分降序，积分相同时净胜球降序
	createTeamWithStats(t, "Everton", 10, 12, 10) // +2
	createTeamWithStats(t, "Arsenal", 15, 20, 5)  // +15
	createTeamWithStats(t, "Chelsea", 10, 14, 8)  // +6
	createTeamWithStats(t, "Burnley", 3, 4, 18)   // -14

	table, err := ClubStandings()
	require.NoError(t, err)
	require.Len(t, table, 4)

	names := make([]string, 0, len(table))
	for _, row := range table {
		require.NotNil(t, row.Team)
		names = append(names, row.Team.Name)
	}
	assert.Equal(t, []string{"Arsenal", "Chelsea", "Everton", "Burnley"}, names)
}

func TestClubStandingsStableOnFullTie(t *testing.T) {
	setupTestDB(t)

	// 积分和净胜球都相同时，保持插入顺序
	createTeamWithStats(t, "Everton", 10, 8, 6)
	createTeamWithStats(t, "Arsenal", 10, 8, 6)

	table, err := ClubStandings()
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "Everton", table[0].Team.Name)
	assert.Equal(t, "Arsenal", table[1].Team.Name)
}

func TestClubStandingsEmpty(t *testing.T) {
	setupTestDB(t)

	_, err := ClubStandings()
	assert.ErrorIs(t, err, ErrNoClubsPlayed)
}

func TestBettorStandingsOrdering(t *testing.T) {
	setupTestDB(t)

	create := func(name string, points, signs, scores int) {
		require.NoError(t, database.DB.Create(&user.User{
			Username:      name,
			Email:         name + "@example.com",
			Points:        points,
			GuessedSigns:  signs,
			GuessedScores: scores,
		}).Error)
	}

	// 积分降序 -> 符号命中降序 -> 比分命中降序
	create("dave", 12, 8, 2)
	create("alice", 20, 10, 4)
	create("bob", 12, 9, 1)
	create("carol", 12, 9, 3)

	bettors, err := BettorStandings()
	require.NoError(t, err)
	require.Len(t, bettors, 4)

	names := make([]string, 0, len(bettors))
	for _, b := range bettors {
		names = append(names, b.Username)
	}
	assert.Equal(t, []string{"alice", "carol", "bob", "dave"}, names)
}

func TestBettorStandingsEmpty(t *testing.T) {
	setupTestDB(t)

	_, err := BettorStandings()
	assert.ErrorIs(t, err, ErrNoBettors)
}
