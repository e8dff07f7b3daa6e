package round

import (
	"errors"
	"net/http"
	"time"

	"github.com/SlpAus/football-pool-backend/pkg/envelope"
	"github.com/gin-gonic/gin"
)

// --- API请求模型 ---

// GameSetupRequest 是开轮次请求中的一场比赛
type GameSetupRequest struct {
	HomeTeamID uint `json:"homeTeamId" binding:"required"`
	AwayTeamID uint `json:"awayTeamId" binding:"required"`
}

// SaveRoundRequestBody 定义了开轮次请求体的JSON结构。
// 比赛是定长的十元素数组，由schema校验，而不是遍历任意键的动态对象。
type SaveRoundRequestBody struct {
	Round          int                `json:"round" binding:"required"`
	BetsAcceptedBy time.Time          `json:"betsAcceptedBy" binding:"required"`
	Games          []GameSetupRequest `json:"games" binding:"required,len=10,dive"`
}

// --- API响应模型 ---

// TeamRefResponse 是响应中嵌入的球队引用
type TeamRefResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// GameResponse 是响应中的一场比赛。
// HomeTeamGoals/AwayTeamGoals 是调用者本人已提交的预测，由投注接口填充。
type GameResponse struct {
	ID              uint            `json:"id"`
	Position        int             `json:"position"`
	HomeTeam        TeamRefResponse `json:"homeTeam"`
	AwayTeam        TeamRefResponse `json:"awayTeam"`
	ActualHomeGoals *int            `json:"actualHomeGoals,omitempty"`
	ActualAwayGoals *int            `json:"actualAwayGoals,omitempty"`
	HomeTeamGoals   *int            `json:"homeTeamGoals,omitempty"`
	AwayTeamGoals   *int            `json:"awayTeamGoals,omitempty"`
}

// FixtureResponse 是活动轮次接口返回的数据
type FixtureResponse struct {
	ID             uint           `json:"id"`
	Round          int            `json:"round"`
	BetsAcceptedBy time.Time      `json:"betsAcceptedBy"`
	Games          []GameResponse `json:"games"`
}

// BuildFixtureResponse 把轮次模型转换为API响应。bet模块也使用它。
func BuildFixtureResponse(r *Round) FixtureResponse {
	resp := FixtureResponse{
		ID:             r.ID,
		Round:          r.Number,
		BetsAcceptedBy: r.BetsAcceptedBy,
		Games:          make([]GameResponse, 0, len(r.Games)),
	}
	for _, g := range r.Games {
		gameResp := GameResponse{
			ID:              g.ID,
			Position:        g.Position,
			ActualHomeGoals: g.HomeGoals,
			ActualAwayGoals: g.AwayGoals,
		}
		if g.HomeTeam != nil {
			gameResp.HomeTeam = TeamRefResponse{ID: g.HomeTeam.ID, Name: g.HomeTeam.Name, ShortName: g.HomeTeam.ShortName}
		}
		if g.AwayTeam != nil {
			gameResp.AwayTeam = TeamRefResponse{ID: g.AwayTeam.ID, Name: g.AwayTeam.Name, ShortName: g.AwayTeam.ShortName}
		}
		resp.Games = append(resp.Games, gameResp)
	}
	return resp
}

// --- 控制器函数 ---

// SaveRound 处理管理员开启新轮次的请求
func SaveRound(c *gin.Context) {
	var body SaveRoundRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, envelope.Fail("A round requires a number, a deadline and exactly ten games"))
		return
	}

	games := make([]GameSetup, 0, len(body.Games))
	for _, g := range body.Games {
		games = append(games, GameSetup{HomeTeamID: g.HomeTeamID, AwayTeamID: g.AwayTeamID})
	}

	if _, err := OpenRound(body.Round, body.BetsAcceptedBy, games); err != nil {
		switch {
		case errors.Is(err, ErrInvalidRoundSize):
			c.JSON(http.StatusOK, envelope.Fail("A round must contain exactly ten games"))
		case errors.Is(err, ErrActiveRoundExists):
			c.JSON(http.StatusOK, envelope.Fail("There is already an active round, complete it before opening a new one"))
		case errors.Is(err, ErrInvalidTeamPair):
			c.JSON(http.StatusOK, envelope.Fail("Each game needs two different existing teams"))
		case errors.Is(err, ErrDeadlineNotInFuture):
			c.JSON(http.StatusOK, envelope.Fail("The betting deadline must be in the future"))
		default:
			c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		}
		return
	}

	c.JSON(http.StatusOK, envelope.OKWithMessage("Round saved successfully", struct{}{}))
}

// GetActiveRoundForAdmin 返回活动轮次，供管理端录入赛果使用。
// 与投注端不同，它区分"没有活动轮次"和"多个活动轮次"，且不做截止时间判断。
func GetActiveRoundForAdmin(c *gin.Context) {
	activeRound, err := GetActiveRound()
	if err != nil {
		switch {
		case errors.Is(err, ErrNoActiveRound):
			c.JSON(http.StatusOK, envelope.Fail("There are no active rounds at the moment"))
		case errors.Is(err, ErrMultipleActiveRounds):
			c.JSON(http.StatusOK, envelope.Fail("More than one active round found, please contact an administrator"))
		default:
			c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		}
		return
	}

	c.JSON(http.StatusOK, envelope.OK(BuildFixtureResponse(activeRound)))
}
