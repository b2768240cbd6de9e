package usecase

import (
	"strings"

	userdomain "vidtube-backend/internal/user/domain"
	"vidtube-backend/internal/user/repository"
	"vidtube-backend/pkg/apperror"
	"vidtube-backend/pkg/media"
)

// profileUsecase implements ProfileUsecase
type profileUsecase struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	uploader media.Uploader
}

func NewProfileUsecase(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository, uploader media.Uploader) ProfileUsecase {
	return &profileUsecase{
		userRepo: userRepo,
		subRepo:  subRepo,
		uploader: uploader,
	}
}

func (u *profileUsecase) CurrentUser(userID string) (*userdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperror.Internal("failed to look up user")
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user.Sanitized(), nil
}

func (u *profileUsecase) UpdateAccount(userID, fullName, email string) (*userdomain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, apperror.Validation("full name and email are required")
	}

	existing, err := u.userRepo.FindByUsernameOrEmail(email, email)
	if err != nil {
		return nil, apperror.Internal("failed to check existing users")
	}
	if existing != nil && existing.ID != userID {
		return nil, apperror.Conflict("user with email or username already exists")
	}

	user, err := u.userRepo.UpdateFields(userID, map[string]any{
		"full_name": fullName,
		"email":     email,
	})
	if err != nil {
		return nil, apperror.Internal("failed to update account")
	}
	if user == nil {
		// Row gone between token verification and the write.
		return nil, apperror.NotFound("user not found")
	}
	return user.Sanitized(), nil
}

func (u *profileUsecase) UpdateAvatar(userID, localPath string) (*userdomain.User, error) {
	return u.updateImage(userID, localPath, "avatar_url", "avatar file is required", "avatar upload failed")
}

func (u *profileUsecase) UpdateCover(userID, localPath string) (*userdomain.User, error) {
	return u.updateImage(userID, localPath, "cover_image_url", "cover image file is required", "cover image upload failed")
}

func (u *profileUsecase) updateImage(userID, localPath, column, missingMsg, failedMsg string) (*userdomain.User, error) {
	if localPath == "" {
		return nil, apperror.Validation(missingMsg)
	}

	url, err := u.uploader.Upload(localPath)
	if err != nil {
		return nil, apperror.UploadFailed(failedMsg)
	}

	user, err := u.userRepo.UpdateFields(userID, map[string]any{column: url})
	if err != nil {
		return nil, apperror.Internal("failed to update user")
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user.Sanitized(), nil
}

func (u *profileUsecase) ChannelProfile(username, viewerID string) (*userdomain.ChannelProfile, error) {
	channel, err := u.channelByUsername(username)
	if err != nil {
		return nil, err
	}

	subscribers, err := u.subRepo.CountSubscribers(channel.ID)
	if err != nil {
		return nil, apperror.Internal("failed to count subscribers")
	}

	subscribedTo, err := u.subRepo.CountSubscribedTo(channel.ID)
	if err != nil {
		return nil, apperror.Internal("failed to count subscriptions")
	}

	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = u.subRepo.IsSubscribed(viewerID, channel.ID)
		if err != nil {
			return nil, apperror.Internal("failed to check subscription")
		}
	}

	return &userdomain.ChannelProfile{
		ID:                channel.ID,
		Username:          channel.Username,
		FullName:          channel.FullName,
		AvatarURL:         channel.AvatarURL,
		CoverImageURL:     channel.CoverImageURL,
		SubscriberCount:   subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

func (u *profileUsecase) Subscribe(subscriberID, channelUsername string) error {
	channel, err := u.channelByUsername(channelUsername)
	if err != nil {
		return err
	}
	if channel.ID == subscriberID {
		return apperror.Validation("cannot subscribe to your own channel")
	}

	sub := &userdomain.Subscription{SubscriberID: subscriberID, ChannelID: channel.ID}
	if err := u.subRepo.Subscribe(sub); err != nil {
		return apperror.Internal("failed to subscribe")
	}
	return nil
}

func (u *profileUsecase) Unsubscribe(subscriberID, channelUsername string) error {
	channel, err := u.channelByUsername(channelUsername)
	if err != nil {
		return err
	}
	if err := u.subRepo.Unsubscribe(subscriberID, channel.ID); err != nil {
		return apperror.Internal("failed to unsubscribe")
	}
	return nil
}

func (u *profileUsecase) WatchHistory(userID string, limit int) ([]userdomain.WatchEvent, error) {
	events, err := u.subRepo.WatchHistory(userID, limit)
	if err != nil {
		return nil, apperror.Internal("failed to load watch history")
	}
	return events, nil
}

func (u *profileUsecase) RecordWatch(userID, videoID string) error {
	if strings.TrimSpace(videoID) == "" {
		return apperror.Validation("video id is required")
	}
	event := &userdomain.WatchEvent{UserID: userID, VideoID: videoID}
	if err := u.subRepo.RecordWatch(event); err != nil {
		return apperror.Internal("failed to record watch event")
	}
	return nil
}

func (u *profileUsecase) channelByUsername(username string) (*userdomain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperror.Validation("username is required")
	}

	channel, err := u.userRepo.FindByUsernameOrEmail(username, username)
	if err != nil {
		return nil, apperror.Internal("failed to look up channel")
	}
	if channel == nil {
		return nil, apperror.NotFound("channel does not exist")
	}
	return channel, nil
}
