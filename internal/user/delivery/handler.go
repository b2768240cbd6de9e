package delivery

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	userdomain "vidtube-backend/internal/user/domain"
	userdto "vidtube-backend/internal/user/dto"
	"vidtube-backend/internal/user/usecase"
	"vidtube-backend/pkg/apperror"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler translates HTTP requests into usecase calls. Cookie side
// effects live here only; the usecases return plain values.
type UserHandler struct {
	sessionUsecase usecase.SessionUsecase
	profileUsecase usecase.ProfileUsecase
	config         *config.Config
}

func NewUserHandler(sessionUc usecase.SessionUsecase, profileUc usecase.ProfileUsecase, cfg *config.Config) *UserHandler {
	return &UserHandler{
		sessionUsecase: sessionUc,
		profileUsecase: profileUc,
		config:         cfg,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req userdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperror.Validation("invalid registration payload"))
		return
	}

	avatarPath, err := h.saveUploadedFile(c, "avatar")
	if err != nil {
		respondError(c, err)
		return
	}
	coverPath, err := h.saveUploadedFile(c, "coverImage")
	if err != nil {
		if avatarPath != "" {
			os.Remove(avatarPath)
		}
		respondError(c, err)
		return
	}

	user, err := h.sessionUsecase.Register(&req, avatarPath, coverPath)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userdto.APIResponse{
		Success: true,
		Message: "user registered successfully",
		Data:    gin.H{"user": user},
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req userdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.Validation("username or email and password are required"))
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	tokens, err := h.sessionUsecase.Login(identifier, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, tokens.AccessToken, tokens.RefreshToken)
	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "user logged in successfully",
		Data: gin.H{
			"user":         tokens.User,
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
		},
	})
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	incoming, _ := c.Cookie("refreshToken")
	if incoming == "" {
		var req userdto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			incoming = req.RefreshToken
		}
	}

	tokens, err := h.sessionUsecase.Refresh(incoming)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, tokens.AccessToken, tokens.RefreshToken)
	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "access token refreshed",
		Data: gin.H{
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
		},
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	if err := h.sessionUsecase.Logout(user.ID); err != nil {
		respondError(c, err)
		return
	}

	h.clearSessionCookies(c)
	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "user logged out",
	})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	var req userdto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.Validation("old and new passwords are required"))
		return
	}

	if err := h.sessionUsecase.ChangePassword(user.ID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "password changed successfully",
	})
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "current user fetched",
		Data:    gin.H{"user": user},
	})
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	var req userdto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.Validation("full name and email are required"))
		return
	}

	updated, err := h.profileUsecase.UpdateAccount(user.ID, req.FullName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "account updated successfully",
		Data:    gin.H{"user": updated},
	})
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", "avatar updated successfully", h.profileUsecase.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", "cover image updated successfully", h.profileUsecase.UpdateCover)
}

func (h *UserHandler) ChannelProfile(c *gin.Context) {
	viewerID := ""
	if viewer := CurrentUser(c); viewer != nil {
		viewerID = viewer.ID
	}

	profile, err := h.profileUsecase.ChannelProfile(c.Param("username"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "channel profile fetched",
		Data:    gin.H{"channel": profile},
	})
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	if err := h.profileUsecase.Subscribe(user.ID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "subscribed",
	})
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	if err := h.profileUsecase.Unsubscribe(user.ID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "unsubscribed",
	})
}

func (h *UserHandler) WatchHistory(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events, err := h.profileUsecase.WatchHistory(user.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "watch history fetched",
		Data:    gin.H{"history": events},
	})
}

func (h *UserHandler) RecordWatch(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	if err := h.profileUsecase.RecordWatch(user.ID, c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: "watch event recorded",
	})
}

func (h *UserHandler) updateImage(c *gin.Context, field, message string, update func(userID, localPath string) (*userdomain.User, error)) {
	user := CurrentUser(c)
	if user == nil {
		rejectUnauthorized(c)
		return
	}

	localPath, err := h.saveUploadedFile(c, field)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := update(user.ID, localPath)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.APIResponse{
		Success: true,
		Message: message,
		Data:    gin.H{"user": updated},
	})
}

func (h *UserHandler) saveUploadedFile(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		// Absent file is not an error here; required-ness is usecase policy.
		return "", nil
	}
	return h.storeTempFile(c, file)
}

func (h *UserHandler) storeTempFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	localPath := filepath.Join(h.config.TempUploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		return "", apperror.Internal("failed to store uploaded file")
	}
	return localPath, nil
}

func (h *UserHandler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	// Access cookie uses the session default lifetime; refresh cookie lives
	// exactly as long as the token it carries.
	c.SetCookie("accessToken", accessToken, 0, "/", "", h.config.CookieSecure, true)
	c.SetCookie("refreshToken", refreshToken, int(h.config.RefreshTokenExpiry.Seconds()), "/", "", h.config.CookieSecure, true)
}

func (h *UserHandler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("accessToken", "", -1, "/", "", h.config.CookieSecure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.config.CookieSecure, true)
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperror.Status(err), userdto.APIResponse{
		Success: false,
		Message: apperror.PublicMessage(err),
	})
}
