package domain

import "time"

// Subscription links a subscriber to a channel (both are users).
type Subscription struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SubscriberID string    `json:"subscriberId" gorm:"uniqueIndex:idx_sub_channel;not null"`
	ChannelID    string    `json:"channelId" gorm:"uniqueIndex:idx_sub_channel;not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WatchEvent records that a user watched a video. Re-watching moves the
// event to the top of the history instead of duplicating it.
type WatchEvent struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_user_video;not null"`
	VideoID   string    `json:"videoId" gorm:"uniqueIndex:idx_user_video;not null"`
	WatchedAt time.Time `json:"watchedAt" gorm:"index"`
}

// ChannelProfile is the aggregated public view of a user's channel.
type ChannelProfile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	AvatarURL         string `json:"avatar"`
	CoverImageURL     string `json:"coverImage,omitempty"`
	SubscriberCount   int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}
