package dto

import (
	"time"

	"github.com/flocknet/flock/internal/models"
)

// UserResponse is the public user representation (safe for API responses)
type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Nickname      string    `json:"nickname"`
	Bio           string    `json:"bio"`
	ProfilePic    string    `json:"profile_pic"`
	ProfileBanner string    `json:"profile_banner"`
	CreatedAt     time.Time `json:"created_at"`

	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`

	// Relationship field, only set for requests made by an authenticated
	// user looking at someone else's profile.
	IsFollowing *bool `json:"is_following,omitempty"`
}

// UserDetailResponse includes private info for a user viewing their own account
type UserDetailResponse struct {
	UserResponse
	Email string `json:"email"`
}

// UpdateUserRequest for profile updates. Pointer fields distinguish
// "not provided" from "set to empty".
type UpdateUserRequest struct {
	Nickname      *string `json:"nickname,omitempty" binding:"omitempty,min=1,max=50"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Bio           *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	ProfilePic    *string `json:"profile_pic,omitempty"`
	ProfileBanner *string `json:"profile_banner,omitempty"`

	// Changing the password requires proof of the current one.
	Password        *string `json:"password,omitempty" binding:"omitempty,min=8"`
	CurrentPassword *string `json:"current_password,omitempty"`
}

// ToUserResponse converts models.User to UserResponse (excludes sensitive fields)
func ToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Nickname:      user.Nickname,
		Bio:           user.Bio,
		ProfilePic:    user.ProfilePic,
		ProfileBanner: user.ProfileBanner,
		CreatedAt:     user.CreatedAt,
	}
}

// ToUserDetailResponse converts models.User to UserDetailResponse (includes private fields)
func ToUserDetailResponse(user *models.User) *UserDetailResponse {
	if user == nil {
		return nil
	}

	return &UserDetailResponse{
		UserResponse: *ToUserResponse(user),
		Email:        user.Email,
	}
}

// ToUserResponses converts array of users to responses
func ToUserResponses(users []*models.User) []*UserResponse {
	responses := make([]*UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}
