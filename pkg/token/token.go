package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey 存储签发Bearer Token所用的HMAC密钥。
var secretKey []byte

// tokenTTL 是签发Token的有效期。
var tokenTTL time.Duration

// Claims 定义了Bearer Token中携带的用户信息。
type Claims struct {
	UserID   uint     `json:"uid"`
	Username string   `json:"name"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Configure 在应用启动时设置密钥和Token有效期。
// secret为空时生成一个密码学安全的随机密钥（重启后所有已签发的Token失效）。
func Configure(secret string, ttl time.Duration) {
	if secret == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("无法生成安全的密钥: " + err.Error())
		}
		secretKey = key
		fmt.Println("未配置JWT密钥，已生成随机密钥。")
	} else {
		secretKey = []byte(secret)
	}
	tokenTTL = ttl
}

// GenerateToken 为给定的用户签发一个HS256 Bearer Token。
func GenerateToken(userID uint, username string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("无法签发Token: %w", err)
	}
	return signed, nil
}

// ParseToken 验证一个Bearer Token并返回其中的用户信息。
// 签名无效或Token过期时返回错误。
func ParseToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// 只接受HMAC族的签名算法，防止算法替换攻击
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("意外的签名算法: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("无效的Token")
	}
	return claims, nil
}
