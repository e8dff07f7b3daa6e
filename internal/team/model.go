package team

import "gorm.io/gorm"

// Team 定义了球队在数据库中的静态参考数据，启动时种子一次，之后只读。
type Team struct {
	gorm.Model

	// Name 是球队的完整名称，例如 "Arsenal"
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// ShortName 是三个字母的缩写，例如 "ARS"
	ShortName string `gorm:"uniqueIndex;not null" json:"shortName"`
}

// TeamStats 定义了每支球队的赛季累计统计。
// 所有字段只允许结算引擎修改；一支球队的行在它第一次被结算到时才创建。
type TeamStats struct {
	gorm.Model

	// TeamID 关联到球队，每支球队至多一行
	TeamID uint  `gorm:"uniqueIndex;not null" json:"-"`
	Team   *Team `json:"team,omitempty"`

	GamesPlayed   int `json:"gamesPlayed"`
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	GoalsScored   int `json:"goalsScored"`
	GoalsConceded int `json:"goalsConceded"`

	// Points 按 胜3/平1/负0 的规则累计
	Points int `json:"points"`
}

// GoalDifference 返回净胜球，是联赛积分榜的第二排序依据。
func (s *TeamStats) GoalDifference() int {
	return s.GoalsScored - s.GoalsConceded
}
