package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(tips *TipHandler, suggestions *SuggestionHandler) *gin.Engine {
	registerValidations()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tip := router.Group("/tip")
	{
		tip.POST("/calculate", tips.CalculateTip)
		tip.GET("/legend", tips.Legend)
		tip.POST("/suggest", suggestions.SuggestTip)
	}

	sessions := router.Group("/sessions")
	{
		sessions.POST("", suggestions.CreateSession)
		sessions.GET("/:id", suggestions.GetSession)
		sessions.POST("/:id/suggestion", suggestions.RequestSuggestion)
	}

	return router
}
