package usecase

import (
	"crypto/subtle"
	"os"
	"strings"

	userdomain "vidtube-backend/internal/user/domain"
	userdto "vidtube-backend/internal/user/dto"
	"vidtube-backend/internal/user/repository"
	"vidtube-backend/pkg/apperror"
	"vidtube-backend/pkg/media"
)

// sessionUsecase implements SessionUsecase
type sessionUsecase struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	uploader media.Uploader
}

func NewSessionUsecase(userRepo repository.UserRepository, tokens *TokenService, uploader media.Uploader) SessionUsecase {
	return &sessionUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		uploader: uploader,
	}
}

func (u *sessionUsecase) Register(req *userdto.RegisterRequest, avatarPath, coverPath string) (*userdomain.User, error) {
	// The uploader removes files it was handed; anything still staged when
	// we return was never consumed.
	defer removeStaged(avatarPath, coverPath)

	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))
	password := strings.TrimSpace(req.Password)

	if fullName == "" || email == "" || username == "" || password == "" {
		return nil, apperror.Validation("all fields are required")
	}
	if avatarPath == "" {
		return nil, apperror.Validation("avatar file is required")
	}

	existing, err := u.userRepo.FindByUsernameOrEmail(username, email)
	if err != nil {
		return nil, apperror.Internal("failed to check existing users")
	}
	if existing != nil {
		// Single message for either collision so the response does not
		// reveal which field is taken.
		return nil, apperror.Conflict("user with email or username already exists")
	}

	avatarURL, err := u.uploader.Upload(avatarPath)
	if err != nil {
		return nil, apperror.UploadFailed("avatar upload failed")
	}

	coverURL := ""
	if coverPath != "" {
		coverURL, err = u.uploader.Upload(coverPath)
		if err != nil {
			return nil, apperror.UploadFailed("cover image upload failed")
		}
	}

	hashedPassword, err := repository.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password")
	}

	user := &userdomain.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		Password:      hashedPassword,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	}

	if err := u.userRepo.Create(user); err != nil {
		return nil, apperror.Internal("failed to create user")
	}

	return user.Sanitized(), nil
}

func removeStaged(paths ...string) {
	for _, p := range paths {
		if p != "" {
			os.Remove(p)
		}
	}
}

func (u *sessionUsecase) Login(identifier, password string) (*userdto.TokenResponse, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, apperror.Validation("username or email and password are required")
	}

	user, err := u.userRepo.FindByUsernameOrEmail(identifier, identifier)
	if err != nil {
		return nil, apperror.Internal("failed to look up user")
	}
	if user == nil {
		return nil, apperror.NotFound("user does not exist")
	}

	if !repository.CheckPasswordHash(password, user.Password) {
		return nil, apperror.Unauthorized("invalid user credentials")
	}

	return u.issueSession(user)
}

// Refresh validates the incoming refresh token in three stages so tests can
// tell the failures apart: signature/expiry, then user lookup, then the
// stored-value match that catches reuse of a superseded token.
func (u *sessionUsecase) Refresh(refreshToken string) (*userdto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, apperror.Unauthorized("refresh token is missing")
	}

	subject, err := u.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(subject)
	if err != nil {
		return nil, apperror.Internal("failed to look up user")
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid refresh token")
	}

	// A validly signed token that no longer matches the stored value was
	// superseded by a rotation or cleared by logout.
	if subtle.ConstantTimeCompare([]byte(refreshToken), []byte(user.RefreshToken)) != 1 {
		return nil, apperror.Unauthorized("refresh token reused or revoked")
	}

	return u.issueSession(user)
}

func (u *sessionUsecase) Logout(userID string) error {
	if err := u.userRepo.UpdateRefreshToken(userID, ""); err != nil {
		return apperror.Internal("failed to clear refresh token")
	}
	return nil
}

func (u *sessionUsecase) ChangePassword(userID, oldPassword, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return apperror.Validation("new password is required")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return apperror.Internal("failed to look up user")
	}
	if user == nil {
		return apperror.Unauthorized("user not found")
	}

	if !repository.CheckPasswordHash(oldPassword, user.Password) {
		return apperror.Unauthorized("invalid old password")
	}

	hashed, err := repository.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal("failed to hash password")
	}

	if _, err := u.userRepo.UpdateFields(userID, map[string]any{"password": hashed}); err != nil {
		return apperror.Internal("failed to update password")
	}
	return nil
}

func (u *sessionUsecase) ResolveAccessToken(token string) (*userdomain.User, error) {
	subject, err := u.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, apperror.Unauthorized("invalid or expired token")
	}

	user, err := u.userRepo.FindByID(subject)
	if err != nil {
		return nil, apperror.Internal("failed to look up user")
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid or expired token")
	}

	return user.Sanitized(), nil
}

// issueSession mints a fresh access+refresh pair and persists the refresh
// token. Tokens are only returned once the store write succeeded; handing
// out an unpersisted refresh token would desynchronize client and server.
func (u *sessionUsecase) issueSession(user *userdomain.User) (*userdto.TokenResponse, error) {
	accessToken, err := u.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to sign access token")
	}

	refreshToken, err := u.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to sign refresh token")
	}

	if err := u.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, apperror.Internal("failed to persist refresh token")
	}

	return &userdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Sanitized(),
	}, nil
}
