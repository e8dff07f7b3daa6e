package user

import (
	"errors"
	"net/http"

	"github.com/SlpAus/football-pool-backend/pkg/envelope"
	"github.com/SlpAus/football-pool-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// RegisterRequestBody 定义了注册请求体的JSON结构
type RegisterRequestBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequestBody 定义了登录请求体的JSON结构
type LoginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 是注册和登录成功时返回的数据
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// RegisterUser 处理新账户注册，成功时直接签发Token
func RegisterUser(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, envelope.Fail("Username, email and password are required"))
		return
	}

	newUser, err := Register(body.Username, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusOK, envelope.Fail("Username or email is already taken"))
			return
		}
		c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		return
	}

	issueToken(c, newUser)
}

// LoginUser 处理登录请求
func LoginUser(c *gin.Context) {
	var body LoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, envelope.Fail("Username and password are required"))
		return
	}

	u, err := Authenticate(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, envelope.Fail("Invalid username or password"))
			return
		}
		c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		return
	}

	issueToken(c, u)
}

// issueToken 为用户签发Token并写入响应
func issueToken(c *gin.Context, u *User) {
	signed, err := token.GenerateToken(u.ID, u.Username, u.RoleList())
	if err != nil {
		c.JSON(http.StatusInternalServerError, envelope.Fail("Could not issue token"))
		return
	}
	c.JSON(http.StatusOK, envelope.OK(AuthResponse{Token: signed, Username: u.Username}))
}
