package domain

import "time"

type User struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex;not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName      string    `json:"fullName" gorm:"not null"`
	Password      string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	RefreshToken  string    `json:"-"` // at most one valid refresh token per user
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Sanitized returns a copy safe to embed in responses: the password hash and
// the stored refresh token are cleared rather than relying on JSON tags alone.
func (u User) Sanitized() *User {
	u.Password = ""
	u.RefreshToken = ""
	return &u
}
