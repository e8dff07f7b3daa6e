package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 注册和登录的预期失败条件
var (
	ErrUsernameTaken      = errors.New("username or email is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Register 创建一个新的投注者账户并返回它。
// 用户名和邮箱的唯一性由数据库索引保证。
func Register(username, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("无法计算密码散列: %w", err)
	}

	newUser := User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("无法创建新用户: %w", err)
	}
	return &newUser, nil
}

// Authenticate 校验用户名和密码，成功时返回用户。
func Authenticate(username, password string) (*User, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// SeedAdminUser 在用户表为空时创建初始管理员账户。
// 初始密码来自配置，首次登录后应当修改。
func SeedAdminUser(adminPassword string) error {
	var count int64
	if err := database.DB.Model(&User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计用户数量: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("无法计算管理员密码散列: %w", err)
	}

	admin := User{
		Username:     "Admin",
		Email:        "admin@admin.com",
		PasswordHash: string(hash),
		Roles:        RoleAdmin,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("无法创建管理员账户: %w", err)
	}
	fmt.Println("已创建初始管理员账户 Admin。")
	return nil
}
