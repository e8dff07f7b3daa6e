package user

import (
	"strings"

	"gorm.io/gorm"
)

// RoleAdmin 是管理员角色名，持有它的用户才能开轮次和录入赛果。
const RoleAdmin = "Admin"

// User 定义了投注者在SQLite数据库中的持久化模型。
// 三个累计计数器只允许结算引擎修改，且单调不减。
type User struct {
	gorm.Model

	// Username 是用户的显示名，也是登录凭证之一
	Username string `gorm:"uniqueIndex;not null" json:"username"`

	// Email 是用户的邮箱
	Email string `gorm:"uniqueIndex;not null" json:"-"`

	// PasswordHash 是bcrypt处理后的密码散列
	PasswordHash string `json:"-"`

	// Roles 以逗号分隔存储用户的角色列表，例如 "Admin"
	Roles string `json:"-"`

	// GuessedScores 是精确比分命中的累计次数
	GuessedScores int `json:"guessedScores"`

	// GuessedSigns 是胜负符号命中的累计次数（包含精确比分命中的场次）
	GuessedSigns int `json:"guessedSigns"`

	// Points 是按权重累计的总积分
	Points int `json:"points"`
}

// HasRole 判断用户是否拥有给定角色。
func (u *User) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}

// RoleList 把逗号分隔的角色串拆成列表，用于写入Token。
func (u *User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	parts := strings.Split(u.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, r := range parts {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	return roles
}
