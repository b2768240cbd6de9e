package repository

import (
	"errors"
	"time"

	userdomain "vidtube-backend/internal/user/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

func (r *subscriptionRepository) Subscribe(sub *userdomain.Subscription) error {
	sub.ID = uuid.New().String()
	sub.CreatedAt = time.Now()
	// Subscribing twice is a no-op, not an error.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
		DoNothing: true,
	}).Create(sub).Error
}

func (r *subscriptionRepository) Unsubscribe(subscriberID, channelID string) error {
	return r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&userdomain.Subscription{}).Error
}

func (r *subscriptionRepository) CountSubscribers(channelID string) (int64, error) {
	var count int64
	err := r.db.Model(&userdomain.Subscription{}).
		Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountSubscribedTo(subscriberID string) (int64, error) {
	var count int64
	err := r.db.Model(&userdomain.Subscription{}).
		Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) IsSubscribed(subscriberID, channelID string) (bool, error) {
	var sub userdomain.Subscription
	err := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *subscriptionRepository) RecordWatch(event *userdomain.WatchEvent) error {
	event.ID = uuid.New().String()
	event.WatchedAt = time.Now()
	// Re-watching bumps the existing event to the top of the history.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]any{"watched_at": event.WatchedAt}),
	}).Create(event).Error
}

func (r *subscriptionRepository) WatchHistory(userID string, limit int) ([]userdomain.WatchEvent, error) {
	var events []userdomain.WatchEvent
	q := r.db.Where("user_id = ?", userID).Order("watched_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&events).Error
	return events, err
}
