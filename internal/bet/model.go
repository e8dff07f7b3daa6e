package bet

import (
	"github.com/SlpAus/football-pool-backend/internal/round"
	"gorm.io/gorm"
)

// Bet 定义了一个用户对一场比赛的预测。
// (UserID, GameID) 上的唯一索引保证每人每场至多一条记录；
// 重复提交通过以该键为冲突目标的upsert整体替换，而不是删除后重插。
type Bet struct {
	gorm.Model

	UserID uint `gorm:"uniqueIndex:idx_bet_user_game;not null" json:"-"`
	GameID uint `gorm:"uniqueIndex:idx_bet_user_game;not null" json:"gameId"`

	// 预测的比分
	HomeGoals int `json:"homeTeamGoals"`
	AwayGoals int `json:"awayTeamGoals"`

	// Sign 由提交的比分在服务端推导，客户端传来的符号一律忽略
	Sign round.Sign `json:"sign"`
}
