package repository

import userdomain "vidtube-backend/internal/user/domain"

// UserRepository is the credential store: user rows plus the single stored
// refresh token per user.
type UserRepository interface {
	Create(user *userdomain.User) error
	FindByID(id string) (*userdomain.User, error)
	FindByUsernameOrEmail(username, email string) (*userdomain.User, error)
	Update(user *userdomain.User) error

	// UpdateRefreshToken writes only the refresh-token column so an
	// unrelated schema problem on the row cannot block login or rotation.
	UpdateRefreshToken(userID, token string) error

	// UpdateFields applies a partial update and returns the fresh row.
	UpdateFields(userID string, patch map[string]any) (*userdomain.User, error)
}

// SubscriptionRepository covers the social side: channel subscriptions and
// per-user watch history.
type SubscriptionRepository interface {
	Subscribe(sub *userdomain.Subscription) error
	Unsubscribe(subscriberID, channelID string) error
	CountSubscribers(channelID string) (int64, error)
	CountSubscribedTo(subscriberID string) (int64, error)
	IsSubscribed(subscriberID, channelID string) (bool, error)

	RecordWatch(event *userdomain.WatchEvent) error
	WatchHistory(userID string, limit int) ([]userdomain.WatchEvent, error)
}
