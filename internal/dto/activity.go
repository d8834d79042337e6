package dto

import "time"

// Activity kinds
const (
	ActivityPosted = "POSTED"
	ActivityLiked  = "LIKED"
	ActivityShared = "SHARED"
)

// Notification kinds
const (
	NotificationReply = "reply"
	NotificationLike  = "like"
	NotificationShare = "share"
)

// ActivityEntry is one event in a user's activity stream or in the feed:
// a post authored, a post liked, or a post shared.
type ActivityEntry struct {
	Kind      string        `json:"kind"`
	ActorID   string        `json:"actor_id"`
	Actor     *UserResponse `json:"actor,omitempty"`
	Post      *PostResponse `json:"post"`
	Timestamp time.Time     `json:"timestamp"`
}

// NotificationEntry is one interaction with a post the caller authored.
// Content is populated for replies only.
type NotificationEntry struct {
	Kind      string        `json:"kind"`
	ActorID   string        `json:"actor_id"`
	Actor     *UserResponse `json:"actor,omitempty"`
	PostID    string        `json:"post_id"`
	Content   string        `json:"content,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
