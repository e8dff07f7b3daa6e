package standings

import (
	"errors"
	"net/http"

	"github.com/SlpAus/football-pool-backend/pkg/envelope"
	"github.com/gin-gonic/gin"
)

// ClubStandingResponse 是联赛积分榜中的一行
type ClubStandingResponse struct {
	Name           string `json:"name"`
	ShortName      string `json:"shortName"`
	GamesPlayed    int    `json:"gamesPlayed"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsScored    int    `json:"goalsScored"`
	GoalsConceded  int    `json:"goalsConceded"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

// BettorStandingResponse 是投注者积分榜中的一行
type BettorStandingResponse struct {
	Username      string `json:"username"`
	GuessedSigns  int    `json:"guessedSigns"`
	GuessedScores int    `json:"guessedScores"`
	Points        int    `json:"points"`
}

// GetClubStandings 返回联赛积分榜
func GetClubStandings(c *gin.Context) {
	table, err := ClubStandings()
	if err != nil {
		if errors.Is(err, ErrNoClubsPlayed) {
			c.JSON(http.StatusOK, envelope.Fail("No teams in database"))
			return
		}
		c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		return
	}

	responses := make([]ClubStandingResponse, 0, len(table))
	for _, row := range table {
		resp := ClubStandingResponse{
			GamesPlayed:    row.GamesPlayed,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsScored:    row.GoalsScored,
			GoalsConceded:  row.GoalsConceded,
			GoalDifference: row.GoalDifference(),
			Points:         row.Points,
		}
		if row.Team != nil {
			resp.Name = row.Team.Name
			resp.ShortName = row.Team.ShortName
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, envelope.OK(responses))
}

// GetBettorStandings 返回投注者积分榜
func GetBettorStandings(c *gin.Context) {
	bettors, err := BettorStandings()
	if err != nil {
		if errors.Is(err, ErrNoBettors) {
			c.JSON(http.StatusOK, envelope.Fail("No users are currently betting"))
			return
		}
		c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		return
	}

	responses := make([]BettorStandingResponse, 0, len(bettors))
	for _, b := range bettors {
		responses = append(responses, BettorStandingResponse{
			Username:      b.Username,
			GuessedSigns:  b.GuessedSigns,
			GuessedScores: b.GuessedScores,
			Points:        b.Points,
		})
	}
	c.JSON(http.StatusOK, envelope.OK(responses))
}
