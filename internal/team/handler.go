package team

import (
	"net/http"

	"github.com/SlpAus/football-pool-backend/internal/platform/database"
	"github.com/SlpAus/football-pool-backend/pkg/envelope"
	"github.com/gin-gonic/gin"
)

// TeamResponse 是球队列表接口返回的单个球队
type TeamResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// GetAllTeams 返回全部球队，供管理端的开轮次表单使用
func GetAllTeams(c *gin.Context) {
	var teams []Team
	if err := database.DB.Order("name asc").Find(&teams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, envelope.Fail("A database error occured"))
		return
	}
	if len(teams) == 0 {
		c.JSON(http.StatusOK, envelope.Fail("No teams in database"))
		return
	}

	responses := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, TeamResponse{ID: t.ID, Name: t.Name, ShortName: t.ShortName})
	}
	c.JSON(http.StatusOK, envelope.OK(responses))
}
