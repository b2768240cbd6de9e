package delivery

import (
	"net/http"
	"strings"

	userdomain "vidtube-backend/internal/user/domain"
	userdto "vidtube-backend/internal/user/dto"
	"vidtube-backend/internal/user/usecase"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware guards protected routes. The access token is read from the
// accessToken cookie first, then from the Authorization header. Every
// failure is the same 401 so callers cannot probe which check tripped.
func AuthMiddleware(sessionUsecase usecase.SessionUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessTokenFromRequest(c)
		if token == "" {
			rejectUnauthorized(c)
			return
		}

		user, err := sessionUsecase.ResolveAccessToken(token)
		if err != nil {
			rejectUnauthorized(c)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user when a valid token is present but
// lets the request through either way. Viewer-aware reads (channel profile)
// use it to fill in isSubscribed.
func OptionalAuthMiddleware(sessionUsecase usecase.SessionUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := accessTokenFromRequest(c); token != "" {
			if user, err := sessionUsecase.ResolveAccessToken(token); err == nil {
				c.Set(userContextKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the identity the middleware attached, or nil.
func CurrentUser(c *gin.Context) *userdomain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := v.(*userdomain.User)
	if !ok {
		return nil
	}
	return user
}

func accessTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func rejectUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, userdto.APIResponse{
		Success: false,
		Message: "unauthorized request",
	})
}
