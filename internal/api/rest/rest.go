package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/esperenza/referral-exchange/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Marketplace browsing (public read access)
		v1.GET("/referrals/available", handler.ListAvailableReferrals)

		// Own referrals (requires authentication)
		v1.GET("/referrals/user", middleware.Auth(authCfg), handler.ListUserReferrals)

		// Referral lifecycle (requires authentication)
		v1.POST("/referrals", middleware.Auth(authCfg), handler.CreateReferral)
		v1.POST("/referrals/redeem", middleware.Auth(authCfg), handler.RedeemReferral)

		// Points ledger (public read access)
		v1.GET("/users/:user_id/points", handler.GetUserPoints)
	}
}
