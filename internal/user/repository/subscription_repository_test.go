package repository

import (
	"testing"
	"time"

	userdomain "vidtube-backend/internal/user/domain"

	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_Counts(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	subs := NewSubscriptionRepository(db)

	alice := createUser(t, users, "alice", "alice@x.com")
	bob := createUser(t, users, "bob", "bob@x.com")
	carol := createUser(t, users, "carol", "carol@x.com")

	require.NoError(t, subs.Subscribe(&userdomain.Subscription{SubscriberID: bob.ID, ChannelID: alice.ID}))
	require.NoError(t, subs.Subscribe(&userdomain.Subscription{SubscriberID: carol.ID, ChannelID: alice.ID}))
	require.NoError(t, subs.Subscribe(&userdomain.Subscription{SubscriberID: alice.ID, ChannelID: bob.ID}))

	count, err := subs.CountSubscribers(alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = subs.CountSubscribedTo(alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	subscribed, err := subs.IsSubscribed(bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, subscribed)

	subscribed, err = subs.IsSubscribed(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, subscribed)
}

func TestSubscriptionRepository_SubscribeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	subs := NewSubscriptionRepository(db)

	alice := createUser(t, users, "alice", "alice@x.com")
	bob := createUser(t, users, "bob", "bob@x.com")

	require.NoError(t, subs.Subscribe(&userdomain.Subscription{SubscriberID: bob.ID, ChannelID: alice.ID}))
	require.NoError(t, subs.Subscribe(&userdomain.Subscription{SubscriberID: bob.ID, ChannelID: alice.ID}))

	count, err := subs.CountSubscribers(alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestSubscriptionRepository_Unsubscribe(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	subs := NewSubscriptionRepository(db)

	alice := createUser(t, users, "alice", "alice@x.com")
	bob := createUser(t, users, "bob", "bob@x.com")

	require.NoError(t, subs.Subscribe(&userdomain.Subscription{SubscriberID: bob.ID, ChannelID: alice.ID}))
	require.NoError(t, subs.Unsubscribe(bob.ID, alice.ID))

	count, err := subs.CountSubscribers(alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func TestSubscriptionRepository_WatchHistory(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	subs := NewSubscriptionRepository(db)

	alice := createUser(t, users, "alice", "alice@x.com")

	require.NoError(t, subs.RecordWatch(&userdomain.WatchEvent{UserID: alice.ID, VideoID: "vid-1"}))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, subs.RecordWatch(&userdomain.WatchEvent{UserID: alice.ID, VideoID: "vid-2"}))
	time.Sleep(5 * time.Millisecond)

	// Re-watching vid-1 moves it back to the top without duplicating it.
	require.NoError(t, subs.RecordWatch(&userdomain.WatchEvent{UserID: alice.ID, VideoID: "vid-1"}))

	events, err := subs.WatchHistory(alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "vid-1", events[0].VideoID)
	require.Equal(t, "vid-2", events[1].VideoID)

	limited, err := subs.WatchHistory(alice.ID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}
