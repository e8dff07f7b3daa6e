package bet

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/internal/round"
	"github.com/SlpAus/football-pool-backend/internal/user"
	"github.com/SlpAus/football-pool-backend/pkg/envelope"
	"github.com/gin-gonic/gin"
)

// submitLockTTL 是单次投注提交持有咨询锁的最长时间
const submitLockTTL = 10 * time.Second

// PredictionRequest 是提交请求中对一场比赛的预测。
// 比分使用指针类型以区分"0球"和"没有填写"。
type PredictionRequest struct {
	GameID        uint `json:"gameId" binding:"required"`
	HomeTeamGoals *int `json:"homeTeamGoals" binding:"required,min=0"`
	AwayTeamGoals *int `json:"awayTeamGoals" binding:"required,min=0"`
}

// SubmitBetsRequestBody 定义了投注提交请求体的JSON结构。
// 预测是定长的十元素数组，由schema校验。
type SubmitBetsRequestBody struct {
	Games []PredictionRequest `json:"games" binding:"required,len=10,dive"`
}

// GetActiveRoundWithBets 返回活动轮次，并合并调用者已提交的预测。
// 投注端不区分零个和多个活动轮次，两者都意味着"当前无法投注"。
func GetActiveRoundWithBets(c *gin.Context) {
	activeRound, err := round.GetActiveRound()
	if err != nil {
		switch {
		case errors.Is(err, round.ErrNoActiveRound), errors.Is(err, round.ErrMultipleActiveRounds):
			c.JSON(http.StatusOK, envelope.Fail("There is no active round currently, please come back again later!"))
		default:
			c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		}
		return
	}

	if !activeRound.IsBettingOpen(time.Now()) {
		c.JSON(http.StatusOK, envelope.Fail("Sorry, we are no longer accepting bets for this round"))
		return
	}

	resp := round.BuildFixtureResponse(activeRound)

	// 合并用户已有的预测，用于预填充重复提交的表单
	userID := user.CurrentUserID(c)
	existingBets, err := GetUserBetsForRound(userID, activeRound.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		return
	}
	if len(existingBets) > 0 {
		betsByGame := make(map[uint]Bet, len(existingBets))
		for _, b := range existingBets {
			betsByGame[b.GameID] = b
		}
		for i := range resp.Games {
			if b, ok := betsByGame[resp.Games[i].ID]; ok {
				homeGoals, awayGoals := b.HomeGoals, b.AwayGoals
				resp.Games[i].HomeTeamGoals = &homeGoals
				resp.Games[i].AwayTeamGoals = &awayGoals
			}
		}
	}

	c.JSON(http.StatusOK, envelope.OK(resp))
}

// SubmitBets 处理用户提交/替换一整轮预测的请求
func SubmitBets(c *gin.Context) {
	// 提交依赖Redis咨询锁，Redis不可用时整体降级
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, envelope.Fail("Service temporarily unavailable, please try again later"))
		return
	}

	var body SubmitBetsRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, envelope.Fail("All scores are required"))
		return
	}

	userID := user.CurrentUserID(c)

	// 同一用户的并发提交（如双击）串行化，避免替换写入交错
	lock, err := database.AcquireLock(fmt.Sprintf("bet:lock:%d", userID), submitLockTTL)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, envelope.Fail("Service temporarily unavailable, please try again later"))
		return
	}
	if lock == nil {
		c.JSON(http.StatusOK, envelope.Fail("A previous submission is still being processed, please try again"))
		return
	}
	defer lock.Release()

	predictions := make([]Prediction, 0, len(body.Games))
	for _, g := range body.Games {
		predictions = append(predictions, Prediction{
			GameID:    g.GameID,
			HomeGoals: *g.HomeTeamGoals,
			AwayGoals: *g.AwayTeamGoals,
		})
	}

	if err := PlaceBets(userID, predictions); err != nil {
		switch {
		case errors.Is(err, round.ErrNoActiveRound), errors.Is(err, round.ErrMultipleActiveRounds):
			c.JSON(http.StatusOK, envelope.Fail("There is no active round currently, please come back again later!"))
		case errors.Is(err, ErrBettingClosed):
			c.JSON(http.StatusOK, envelope.Fail("Sorry, we are no longer accepting bets for this round"))
		case errors.Is(err, ErrIncompleteSubmission), errors.Is(err, ErrInvalidGoals):
			c.JSON(http.StatusOK, envelope.Fail("All scores are required"))
		default:
			c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		}
		return
	}

	c.JSON(http.StatusOK, envelope.OK(struct{}{}))
}
