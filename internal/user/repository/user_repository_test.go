package repository

import (
	"path/filepath"
	"testing"

	userdomain "vidtube-backend/internal/user/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}, &userdomain.Subscription{}, &userdomain.WatchEvent{}))
	return db
}

func createUser(t *testing.T, repo UserRepository, username, email string) *userdomain.User {
	t.Helper()
	user := &userdomain.User{
		Username: username,
		Email:    email,
		FullName: "Test User",
		Password: "hashed",
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createUser(t, repo, "bob", "bob@x.com")
	require.NotEmpty(t, user.ID)

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "bob", found.Username)

	missing, err := repo.FindByID("nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUserRepository_FindByUsernameOrEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createUser(t, repo, "bob", "bob@x.com")

	// Either identifier reaches the same row.
	byUsername, err := repo.FindByUsernameOrEmail("bob", "bob")
	require.NoError(t, err)
	require.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.FindByUsernameOrEmail("bob@x.com", "bob@x.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	none, err := repo.FindByUsernameOrEmail("ghost", "ghost")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createUser(t, repo, "bob", "bob@x.com")

	err := repo.Create(&userdomain.User{
		Username: "other", Email: "bob@x.com", FullName: "X", Password: "h",
	})
	require.Error(t, err)
}

func TestUserRepository_UpdateRefreshToken(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createUser(t, repo, "bob", "bob@x.com")

	require.NoError(t, repo.UpdateRefreshToken(user.ID, "token-1"))
	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "token-1", found.RefreshToken)

	// Clearing on logout.
	require.NoError(t, repo.UpdateRefreshToken(user.ID, ""))
	found, err = repo.FindByID(user.ID)
	require.NoError(t, err)
	require.Empty(t, found.RefreshToken)
}

func TestUserRepository_UpdateFields(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createUser(t, repo, "bob", "bob@x.com")

	updated, err := repo.UpdateFields(user.ID, map[string]any{
		"full_name": "Robert",
		"email":     "robert@x.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Robert", updated.FullName)
	require.Equal(t, "robert@x.com", updated.Email)
	// Untouched columns survive a partial update.
	require.Equal(t, "bob", updated.Username)
	require.Equal(t, "hashed", updated.Password)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	require.True(t, CheckPasswordHash("secret", hash))
	require.False(t, CheckPasswordHash("wrong", hash))
}
