package round

import (
	"time"

	"github.com/SlpAus/football-pool-backend/internal/team"
	"gorm.io/gorm"
)

// RoundSize 是一个轮次固定包含的比赛场数
const RoundSize = 10

// Sign 是一场比赛的三态胜负符号，采用前端沿用的足彩编码：
// "1" 主胜，"X" 平局，"2" 客胜。
// 符号永远由两个进球数推导，从不单独存储在Game上，避免数据漂移。
type Sign string

const (
	SignHome Sign = "1"
	SignDraw Sign = "X"
	SignAway Sign = "2"
)

// DeriveSign 根据主客进球数推导胜负符号。
func DeriveSign(homeGoals, awayGoals int) Sign {
	switch {
	case homeGoals > awayGoals:
		return SignHome
	case homeGoals < awayGoals:
		return SignAway
	default:
		return SignDraw
	}
}

// Round 定义了一个投注轮次（Fixture）。
// 不变量：任意时刻至多一行 IsActive=true；轮次从活动到已结算的转换只发生一次，
// 之后永远不会重新打开。
type Round struct {
	gorm.Model

	// Number 是管理员指定的轮次编号
	Number int `json:"round"`

	// BetsAcceptedBy 是投注截止时间，超过后不再接受投注
	BetsAcceptedBy time.Time `json:"betsAcceptedBy"`

	// IsActive 标记当前轮次是否开放。结算时被一次性清除。
	IsActive bool `gorm:"index" json:"isActive"`

	// SettledAt 在结算完成时写入，作为防止重复结算的标记
	SettledAt *time.Time `json:"settledAt,omitempty"`

	// Games 是本轮的十场比赛，按Position排序
	Games []Game `json:"games"`
}

// Game 定义了轮次中的一场比赛。
// HomeGoals/AwayGoals 是官方赛果，在结算前为空；投注者的预测存放在bet模块中。
type Game struct {
	gorm.Model

	RoundID  uint `gorm:"index;not null" json:"-"`
	Position int  `gorm:"not null" json:"position"`

	HomeTeamID uint       `gorm:"not null" json:"-"`
	HomeTeam   *team.Team `json:"homeTeam,omitempty"`
	AwayTeamID uint       `gorm:"not null" json:"-"`
	AwayTeam   *team.Team `json:"awayTeam,omitempty"`

	// 官方赛果，结算时一次性写入
	HomeGoals *int `json:"actualHomeGoals,omitempty"`
	AwayGoals *int `json:"actualAwayGoals,omitempty"`
}

// IsBettingOpen 判断在给定时刻投注窗口是否仍然开放。纯函数，无副作用。
func (r *Round) IsBettingOpen(now time.Time) bool {
	return now.Before(r.BetsAcceptedBy)
}

// ResultSign 返回一场已结算比赛的官方胜负符号。
// 赛果尚未写入时返回false。
func (g *Game) ResultSign() (Sign, bool) {
	if g.HomeGoals == nil || g.AwayGoals == nil {
		return "", false
	}
	return DeriveSign(*g.HomeGoals, *g.AwayGoals), true
}
