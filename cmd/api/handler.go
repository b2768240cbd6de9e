package api

import (
	"time"

	userDelivery "vidtube-backend/internal/user/delivery"
	userUsecase "vidtube-backend/internal/user/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	sessionUsecase userUsecase.SessionUsecase
	profileUsecase userUsecase.ProfileUsecase
	config         *config.Config
}

func NewHandler(sessionUc userUsecase.SessionUsecase, profileUc userUsecase.ProfileUsecase, cfg *config.Config) *Handler {
	return &Handler{
		sessionUsecase: sessionUc,
		profileUsecase: profileUc,
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if h.config.CORSOrigin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", h.config.CORSOrigin)
		} else if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.MaxMultipartMemory = 8 << 20
	r.Static("/public", "./public")

	userHandler := userDelivery.NewUserHandler(h.sessionUsecase, h.profileUsecase, h.config)
	loginLimiter := userDelivery.NewRateLimiter(time.Minute, 10)
	SetupRoutes(r, userHandler, h.sessionUsecase, loginLimiter)

	return r.Run(addr)
}
