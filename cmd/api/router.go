package api

import (
	"net/http"

	userDelivery "vidtube-backend/internal/user/delivery"
	userUsecase "vidtube-backend/internal/user/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, userHandler *userDelivery.UserHandler, sessionUsecase userUsecase.SessionUsecase, loginLimiter *userDelivery.RateLimiter) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		users := api.Group("/v1/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userDelivery.LoginRateLimit(loginLimiter), userHandler.Login)
			users.POST("/refresh-token", userHandler.RefreshToken)

			protected := users.Group("")
			protected.Use(userDelivery.AuthMiddleware(sessionUsecase))
			{
				protected.POST("/logout", userHandler.Logout)
				protected.POST("/change-password", userHandler.ChangePassword)
				protected.GET("/current-user", userHandler.CurrentUser)
				protected.PATCH("/update-account", userHandler.UpdateAccount)
				protected.PATCH("/avatar", userHandler.UpdateAvatar)
				protected.PATCH("/cover-image", userHandler.UpdateCoverImage)
				protected.GET("/history", userHandler.WatchHistory)
				protected.POST("/history/:videoId", userHandler.RecordWatch)
				protected.POST("/c/:username/subscribe", userHandler.Subscribe)
				protected.DELETE("/c/:username/subscribe", userHandler.Unsubscribe)
			}

			// Channel profiles are public but viewer-aware: a valid token
			// fills in isSubscribed, no token still gets the counts.
			users.GET("/c/:username", userDelivery.OptionalAuthMiddleware(sessionUsecase), userHandler.ChannelProfile)
		}
	}
}
