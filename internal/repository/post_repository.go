package repository

import (
	"context"
	"errors"

	"github.com/flocknet/flock/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrAlreadyLiked  = errors.New("post already liked")
	ErrNotLiked      = errors.New("post not liked")
	ErrAlreadyShared = errors.New("post already shared")
	ErrNotShared     = errors.New("post not shared")
)

// PostRepository handles all database operations for posts and interactions
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetPostsByUser(ctx context.Context, userID string) ([]*models.Post, error)
	CountPostsByUser(ctx context.Context, userID string) (int64, error)
	GetReplies(ctx context.Context, postID string) ([]*models.Post, error)
	DeletePost(ctx context.Context, postID string) error

	LikePost(ctx context.Context, userID, postID string) error
	UnlikePost(ctx context.Context, userID, postID string) error
	HasLiked(ctx context.Context, userID, postID string) (bool, error)

	SharePost(ctx context.Context, userID, postID string) error
	UnsharePost(ctx context.Context, userID, postID string) error
	HasShared(ctx context.Context, userID, postID string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// CreatePost inserts a post. When the post is a reply the parent must
// exist; its cached reply counter is bumped in the same transaction.
func (r *postRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post == nil || post.UserID == "" {
		return ErrInvalidInput
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if post.ParentID != nil {
			var parent models.Post
			if err := tx.Where("id = ?", *post.ParentID).First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPostNotFound
				}
				return err
			}
			if err := tx.Model(&parent).
				UpdateColumn("reply_count", gorm.Expr("reply_count + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Create(post).Error
	})
}

// GetPost gets a post by ID with its author preloaded
func (r *postRepository) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", postID).
		First(&post).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}

	return &post, err
}

// GetPostsByUser returns a user's posts, newest first
func (r *postRepository) GetPostsByUser(ctx context.Context, userID string) ([]*models.Post, error) {
	var posts []*models.Post

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error

	return posts, err
}

// CountPostsByUser returns how many posts (including replies) a user has authored
func (r *postRepository) CountPostsByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// GetReplies returns direct replies to a post, oldest first
func (r *postRepository) GetReplies(ctx context.Context, postID string) ([]*models.Post, error) {
	var replies []*models.Post

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_id = ?", postID).
		Order("created_at ASC").
		Find(&replies).Error

	return replies, err
}

// DeletePost removes a post, the reply thread rooted at it, and all likes
// and shares on any of those posts. The parent's cached reply counter is
// decremented when a reply is deleted.
func (r *postRepository) DeletePost(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		if post.ParentID != nil {
			tx.Model(&models.Post{}).
				Where("id = ? AND reply_count > 0", *post.ParentID).
				UpdateColumn("reply_count", gorm.Expr("reply_count - 1"))
		}

		ids := []string{post.ID}
		for len(ids) > 0 {
			if err := tx.Where("post_id IN ?", ids).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", ids).Delete(&models.PostShare{}).Error; err != nil {
				return err
			}

			var replyIDs []string
			if err := tx.Model(&models.Post{}).Where("parent_id IN ?", ids).
				Pluck("id", &replyIDs).Error; err != nil {
				return err
			}

			if err := tx.Where("id IN ?", ids).Delete(&models.Post{}).Error; err != nil {
				return err
			}

			ids = replyIDs
		}

		return nil
	})
}

// LikePost records a like. Duplicate likes are rejected, never deduplicated.
func (r *postRepository) LikePost(ctx context.Context, userID, postID string) error {
	return r.addInteraction(ctx, userID, postID, "like")
}

// UnlikePost removes a like. Returns ErrNotLiked when there was none.
func (r *postRepository) UnlikePost(ctx context.Context, userID, postID string) error {
	return r.removeInteraction(ctx, userID, postID, "like")
}

func (r *postRepository) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// SharePost records a share. Duplicate shares are rejected.
func (r *postRepository) SharePost(ctx context.Context, userID, postID string) error {
	return r.addInteraction(ctx, userID, postID, "share")
}

// UnsharePost removes a share. Returns ErrNotShared when there was none.
func (r *postRepository) UnsharePost(ctx context.Context, userID, postID string) error {
	return r.removeInteraction(ctx, userID, postID, "share")
}

func (r *postRepository) HasShared(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostShare{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) addInteraction(ctx context.Context, userID, postID, kind string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var count int64
		var err error
		switch kind {
		case "like":
			if err = tx.Model(&models.PostLike{}).
				Where("user_id = ? AND post_id = ?", userID, postID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrAlreadyLiked
			}
			err = tx.Create(&models.PostLike{UserID: userID, PostID: postID}).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
		case "share":
			if err = tx.Model(&models.PostShare{}).
				Where("user_id = ? AND post_id = ?", userID, postID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrAlreadyShared
			}
			err = tx.Create(&models.PostShare{UserID: userID, PostID: postID}).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyShared
			}
		}
		if err != nil {
			return err
		}

		column := kind + "_count"
		return tx.Model(&post).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	})
}

func (r *postRepository) removeInteraction(ctx context.Context, userID, postID, kind string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var result *gorm.DB
		switch kind {
		case "like":
			result = tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.PostLike{})
		case "share":
			result = tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.PostShare{})
		}
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if kind == "like" {
				return ErrNotLiked
			}
			return ErrNotShared
		}

		column := kind + "_count"
		return tx.Model(&models.Post{}).
			Where("id = ? AND "+column+" > 0", postID).
			UpdateColumn(column, gorm.Expr(column+" - 1")).Error
	})
}
