package server

import (
	handler "waste-tender-bidding/services/tender/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(h *handler.TenderHandler) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	tenders := router.Group("/tenders")
	{
		tenders.GET("", h.ListTendersHandler)
		tenders.GET("/:tender_id", h.GetTenderHandler)
		tenders.GET("/:tender_id/ranking", h.GetRankingHandler)
		tenders.GET("/:tender_id/history", h.GetHistoryHandler)
		tenders.GET("/:tender_id/time-remaining", h.GetTimeRemainingHandler)
		tenders.POST("/:tender_id/bids", h.PlaceBidHandler)
		tenders.POST("/:tender_id/close", h.CloseTenderHandler)
	}

	notifications := router.Group("/notifications")
	{
		notifications.GET("", h.GetNotificationsHandler)
		notifications.DELETE("", h.ClearNotificationsHandler)
	}

	ch := router.Group("/channel")
	{
		ch.GET("", h.GetChannelStateHandler)
		ch.POST("/connect", h.ConnectChannelHandler)
		ch.POST("/disconnect", h.DisconnectChannelHandler)
		ch.POST("/messages", h.SendChannelMessageHandler)
	}

	router.GET("/stats", h.GetStatsHandler)

	return router
}
