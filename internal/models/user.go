package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account on the network.
//
// Accounts are hard-deleted: removal cascades to posts, likes, shares, and
// both directions of follow edges (see repository.UserRepository.DeleteUser),
// so a deleted username can be registered again.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Nickname string `gorm:"not null" json:"nickname"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`

	// bcrypt hash, never serialized
	PasswordHash string `gorm:"type:text;not null" json:"-"`

	Bio           string `gorm:"type:text" json:"bio"`
	ProfilePic    string `json:"profile_pic"`
	ProfileBanner string `json:"profile_banner"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Follow is a directed edge from a follower to a followed user.
// The composite unique index makes the database the arbiter of duplicate
// follows under concurrent requests.
type Follow struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	FollowerID string `gorm:"not null;index;uniqueIndex:idx_follows_edge" json:"follower_id"`
	Follower   User   `gorm:"foreignKey:FollowerID" json:"-"`
	FollowedID string `gorm:"not null;index;uniqueIndex:idx_follows_edge" json:"followed_id"`
	Followed   User   `gorm:"foreignKey:FollowedID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
