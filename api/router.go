package api

import (
	"github.com/SlpAus/football-pool-backend/internal/bet"
	"github.com/SlpAus/football-pool-backend/internal/round"
	"github.com/SlpAus/football-pool-backend/internal/settlement"
	"github.com/SlpAus/football-pool-backend/internal/standings"
	"github.com/SlpAus/football-pool-backend/internal/team"
	"github.com/SlpAus/football-pool-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 注册与登录，无需认证
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", user.RegisterUser)
			authRoutes.POST("/login", user.LoginUser)
		}

		// 积分榜是公开的只读视图
		standingsRoutes := api.Group("/standings")
		{
			standingsRoutes.GET("/club", standings.GetClubStandings)
			standingsRoutes.GET("/user", standings.GetBettorStandings)
		}

		// 投注相关的路由，需要登录
		betRoutes := api.Group("/bets", user.AuthMiddleware())
		{
			betRoutes.GET("/get-active-round", bet.GetActiveRoundWithBets)
			betRoutes.POST("/submit", bet.SubmitBets)
		}

		// 管理端路由，需要Admin角色
		adminRoutes := api.Group("/admin", user.AuthMiddleware(), user.RequireAdmin())
		{
			adminRoutes.GET("/all-teams", team.GetAllTeams)
			adminRoutes.POST("/save-round", round.SaveRound)
			adminRoutes.GET("/get-active-round", round.GetActiveRoundForAdmin)
			adminRoutes.POST("/complete-round", settlement.CompleteRound)
		}
	}
}
