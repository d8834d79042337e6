package dto

import (
	"time"

	"github.com/flocknet/flock/internal/models"
)

// CreatePostRequest for new top-level posts and replies
type CreatePostRequest struct {
	TextContent string  `json:"text_content" binding:"required,min=1,max=2000"`
	ParentID    *string `json:"parent_id,omitempty"`
}

// PostResponse is the public post representation
type PostResponse struct {
	ID          string        `json:"id"`
	User        *UserResponse `json:"user,omitempty"`
	TextContent string        `json:"text_content"`
	ParentID    *string       `json:"parent_id,omitempty"`

	LikeCount  int `json:"like_count"`
	ShareCount int `json:"share_count"`
	ReplyCount int `json:"reply_count"`

	// Viewer-relative flags, only set on authenticated reads
	Liked  *bool `json:"liked,omitempty"`
	Shared *bool `json:"shared,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPostResponse converts a models.Post to its API representation
func ToPostResponse(post *models.Post) *PostResponse {
	if post == nil {
		return nil
	}

	resp := &PostResponse{
		ID:          post.ID,
		TextContent: post.TextContent,
		ParentID:    post.ParentID,
		LikeCount:   post.LikeCount,
		ShareCount:  post.ShareCount,
		ReplyCount:  post.ReplyCount,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if post.User.ID != "" {
		resp.User = ToUserResponse(&post.User)
	}
	return resp
}

// ToPostResponses converts an array of posts to responses
func ToPostResponses(posts []*models.Post) []*PostResponse {
	responses := make([]*PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = ToPostResponse(post)
	}
	return responses
}
