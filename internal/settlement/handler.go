package settlement

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/pkg/envelope"
	"github.com/gin-gonic/gin"
)

// settleLockTTL 是单次结算持有咨询锁的最长时间
const settleLockTTL = 30 * time.Second

// GameResultRequest 是录入赛果请求中一场比赛的最终比分。
// 比分使用指针类型以区分"0球"和"没有填写"；符号在服务端重新推导。
type GameResultRequest struct {
	GameID        uint `json:"gameId" binding:"required"`
	HomeTeamScore *int `json:"homeTeamScore" binding:"required,min=0"`
	AwayTeamScore *int `json:"awayTeamScore" binding:"required,min=0"`
}

// CompleteRoundRequestBody 定义了录入赛果请求体的JSON结构
type CompleteRoundRequestBody struct {
	FixtureID uint                `json:"fixtureId" binding:"required"`
	Games     []GameResultRequest `json:"games" binding:"required,len=10,dive"`
}

// CompleteRound 处理管理员录入官方赛果的请求，触发结算
func CompleteRound(c *gin.Context) {
	// 结算依赖Redis咨询锁，Redis不可用时整体降级
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, envelope.Fail("Service temporarily unavailable, please try again later"))
		return
	}

	var body CompleteRoundRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, envelope.Fail("All scores are required"))
		return
	}

	// 对同一轮次的并发结算调用串行化；事务内的守卫是底线，锁是加固
	lock, err := database.AcquireLock(fmt.Sprintf("settlement:lock:%d", body.FixtureID), settleLockTTL)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, envelope.Fail("Service temporarily unavailable, please try again later"))
		return
	}
	if lock == nil {
		c.JSON(http.StatusOK, envelope.Fail("This round is already being settled"))
		return
	}
	defer lock.Release()

	results := make([]GameResult, 0, len(body.Games))
	for _, g := range body.Games {
		results = append(results, GameResult{
			GameID:    g.GameID,
			HomeGoals: *g.HomeTeamScore,
			AwayGoals: *g.AwayTeamScore,
		})
	}

	if err := SettleRound(body.FixtureID, results); err != nil {
		switch {
		case errors.Is(err, ErrRoundNotFound):
			c.JSON(http.StatusOK, envelope.Fail("Round not found"))
		case errors.Is(err, ErrAlreadySettled):
			c.JSON(http.StatusOK, envelope.Fail("Round already settled"))
		case errors.Is(err, ErrRoundNotActive):
			c.JSON(http.StatusOK, envelope.Fail("This round is no longer active"))
		case errors.Is(err, ErrInvalidResults):
			c.JSON(http.StatusOK, envelope.Fail("Final scores must cover exactly the ten games of the round"))
		default:
			c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		}
		return
	}

	c.JSON(http.StatusOK, envelope.OKWithMessage("Round results submitted successfully", struct{}{}))
}
