package usecase

import (
	userdomain "vidtube-backend/internal/user/domain"
	userdto "vidtube-backend/internal/user/dto"
)

// SessionUsecase owns the account/session lifecycle: registration, login,
// refresh-token rotation, logout, and password changes.
type SessionUsecase interface {
	Register(req *userdto.RegisterRequest, avatarPath, coverPath string) (*userdomain.User, error)
	Login(identifier, password string) (*userdto.TokenResponse, error)
	Refresh(refreshToken string) (*userdto.TokenResponse, error)
	Logout(userID string) error
	ChangePassword(userID, oldPassword, newPassword string) error

	// ResolveAccessToken verifies an access token and loads its user for the
	// auth middleware. Every failure is an Unauthorized apperror.
	ResolveAccessToken(token string) (*userdomain.User, error)
}

// ProfileUsecase covers reads and updates of the authenticated user's
// profile plus the social channel queries.
type ProfileUsecase interface {
	CurrentUser(userID string) (*userdomain.User, error)
	UpdateAccount(userID, fullName, email string) (*userdomain.User, error)
	UpdateAvatar(userID, localPath string) (*userdomain.User, error)
	UpdateCover(userID, localPath string) (*userdomain.User, error)

	ChannelProfile(username, viewerID string) (*userdomain.ChannelProfile, error)
	Subscribe(subscriberID, channelUsername string) error
	Unsubscribe(subscriberID, channelUsername string) error

	WatchHistory(userID string, limit int) ([]userdomain.WatchEvent, error)
	RecordWatch(userID, videoID string) error
}
