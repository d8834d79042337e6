package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a piece of text content. A post with a non-nil ParentID is a reply.
type Post struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	TextContent string `gorm:"type:text;not null" json:"text_content"`

	// Threading - parent_id is null for top-level posts
	ParentID *string `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent   *Post   `gorm:"foreignKey:ParentID" json:"-"`
	Replies  []*Post `gorm:"foreignKey:ParentID" json:"replies,omitempty"`

	// Cached engagement counters, maintained alongside the join records
	LikeCount  int `gorm:"default:0" json:"like_count"`
	ShareCount int `gorm:"default:0" json:"share_count"`
	ReplyCount int `gorm:"default:0" json:"reply_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostLike records one user liking one post. Unique per (user, post).
type PostLike struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index;uniqueIndex:idx_post_likes_actor" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	PostID string `gorm:"not null;index;uniqueIndex:idx_post_likes_actor" json:"post_id"`
	Post   Post   `gorm:"foreignKey:PostID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// PostShare records one user sharing one post. Unique per (user, post).
type PostShare struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index;uniqueIndex:idx_post_shares_actor" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	PostID string `gorm:"not null;index;uniqueIndex:idx_post_shares_actor" json:"post_id"`
	Post   Post   `gorm:"foreignKey:PostID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

func (PostShare) TableName() string {
	return "post_shares"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (l *PostLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

func (s *PostShare) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
