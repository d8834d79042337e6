package activity

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/flocknet/flock/internal/dto"
	"github.com/flocknet/flock/internal/models"
)

// Service aggregates posts, likes, and shares into activity streams,
// the follow-based feed, and notifications.
type Service struct {
	db *gorm.DB
}

// NewService creates a new activity service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// UserActivity returns one user's activity, newest first.
func (s *Service) UserActivity(ctx context.Context, userID string) ([]dto.ActivityEntry, error) {
	return s.activityFor(ctx, []string{userID})
}

// Feed returns the merged activity of a set of users, newest first.
// An empty actor set yields an empty feed.
func (s *Service) Feed(ctx context.Context, actorIDs []string) ([]dto.ActivityEntry, error) {
	if len(actorIDs) == 0 {
		return []dto.ActivityEntry{}, nil
	}
	return s.activityFor(ctx, actorIDs)
}

// activityFor unions three record sets (authored posts, likes, shares)
// for the given actors and sorts the merged stream by event time
// descending.
func (s *Service) activityFor(ctx context.Context, actorIDs []string) ([]dto.ActivityEntry, error) {
	var posts []*models.Post
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", actorIDs).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	var likes []*models.PostLike
	err = s.db.WithContext(ctx).
		Preload("User").
		Preload("Post").
		Preload("Post.User").
		Where("user_id IN ?", actorIDs).
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}

	var shares []*models.PostShare
	err = s.db.WithContext(ctx).
		Preload("User").
		Preload("Post").
		Preload("Post.User").
		Where("user_id IN ?", actorIDs).
		Find(&shares).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load shares: %w", err)
	}

	entries := make([]dto.ActivityEntry, 0, len(posts)+len(likes)+len(shares))

	for _, post := range posts {
		entries = append(entries, dto.ActivityEntry{
			Kind:      dto.ActivityPosted,
			ActorID:   post.UserID,
			Actor:     dto.ToUserResponse(&post.User),
			Post:      dto.ToPostResponse(post),
			Timestamp: post.CreatedAt,
		})
	}

	for _, like := range likes {
		entries = append(entries, dto.ActivityEntry{
			Kind:      dto.ActivityLiked,
			ActorID:   like.UserID,
			Actor:     dto.ToUserResponse(&like.User),
			Post:      dto.ToPostResponse(&like.Post),
			Timestamp: like.CreatedAt,
		})
	}

	for _, share := range shares {
		entries = append(entries, dto.ActivityEntry{
			Kind:      dto.ActivityShared,
			ActorID:   share.UserID,
			Actor:     dto.ToUserResponse(&share.User),
			Post:      dto.ToPostResponse(&share.Post),
			Timestamp: share.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries, nil
}

// Notifications returns interactions on posts the given user authored,
// newest first. The author's own replies, likes, and shares on their own
// posts are excluded.
func (s *Service) Notifications(ctx context.Context, userID string) ([]dto.NotificationEntry, error) {
	var replies []*models.Post
	err := s.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN posts AS parents ON parents.id = posts.parent_id").
		Where("parents.user_id = ? AND posts.user_id <> ?", userID, userID).
		Find(&replies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load replies: %w", err)
	}

	var likes []*models.PostLike
	err = s.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN posts ON posts.id = post_likes.post_id").
		Where("posts.user_id = ? AND post_likes.user_id <> ?", userID, userID).
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}

	var shares []*models.PostShare
	err = s.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN posts ON posts.id = post_shares.post_id").
		Where("posts.user_id = ? AND post_shares.user_id <> ?", userID, userID).
		Find(&shares).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load shares: %w", err)
	}

	entries := make([]dto.NotificationEntry, 0, len(replies)+len(likes)+len(shares))

	for _, reply := range replies {
		entries = append(entries, dto.NotificationEntry{
			Kind:      dto.NotificationReply,
			ActorID:   reply.UserID,
			Actor:     dto.ToUserResponse(&reply.User),
			PostID:    *reply.ParentID,
			Content:   reply.TextContent,
			Timestamp: reply.CreatedAt,
		})
	}

	for _, like := range likes {
		entries = append(entries, dto.NotificationEntry{
			Kind:      dto.NotificationLike,
			ActorID:   like.UserID,
			Actor:     dto.ToUserResponse(&like.User),
			PostID:    like.PostID,
			Timestamp: like.CreatedAt,
		})
	}

	for _, share := range shares {
		entries = append(entries, dto.NotificationEntry{
			Kind:      dto.NotificationShare,
			ActorID:   share.UserID,
			Actor:     dto.ToUserResponse(&share.User),
			PostID:    share.PostID,
			Timestamp: share.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries, nil
}
