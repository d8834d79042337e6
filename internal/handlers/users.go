package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/flocknet/flock/internal/dto"
	apierrors "github.com/flocknet/flock/internal/errors"
	"github.com/flocknet/flock/internal/logger"
	"github.com/flocknet/flock/internal/repository"
	"github.com/flocknet/flock/internal/util"
)

// ListUsers returns every user except the caller
// GET /api/v1/users
func (h *Handlers) ListUsers(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	users, err := h.users.ListUsersExcluding(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error("failed to list users", zap.Error(err))
		util.RespondInternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserResponses(users)})
}

// GetUser returns a user's profile with follower, following, and post counts
// GET /api/v1/users/:username
func (h *Handlers) GetUser(c *gin.Context) {
	username := c.Param("username")
	callerID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), username)
	if errors.Is(err, repository.ErrUserNotFound) {
		util.RespondWithAPIError(c, apierrors.NotFoundMessage(fmt.Sprintf("User '%s' not found", username)))
		return
	} else if err != nil {
		util.RespondInternalError(c, "Failed to fetch user")
		return
	}

	resp := dto.ToUserResponse(user)

	if resp.FollowerCount, err = h.users.GetFollowerCount(c.Request.Context(), user.ID); err != nil {
		util.RespondInternalError(c, "Failed to fetch user")
		return
	}
	if resp.FollowingCount, err = h.users.GetFollowingCount(c.Request.Context(), user.ID); err != nil {
		util.RespondInternalError(c, "Failed to fetch user")
		return
	}

	postCount, err := h.posts.CountPostsByUser(c.Request.Context(), user.ID)
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch user")
		return
	}

	if user.ID != callerID {
		following, err := h.users.IsFollowing(c.Request.Context(), callerID, user.ID)
		if err != nil {
			util.RespondInternalError(c, "Failed to fetch user")
			return
		}
		resp.IsFollowing = &following
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       resp,
		"post_count": postCount,
	})
}

// UpdateUser partially updates the caller's own profile. Changing the
// password requires the current password.
// PUT /api/v1/users
func (h *Handlers) UpdateUser(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := h.users.GetUserByEmail(c.Request.Context(), *req.Email)
		if err == nil && existing.ID != user.ID {
			util.RespondConflict(c, "Email already in use")
			return
		} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			util.RespondInternalError(c, "Failed to update user")
			return
		}
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfilePic != nil {
		user.ProfilePic = *req.ProfilePic
	}
	if req.ProfileBanner != nil {
		user.ProfileBanner = *req.ProfileBanner
	}

	if req.Password != nil {
		if req.CurrentPassword == nil {
			util.RespondValidationError(c, "current_password", "Current password is required to change password")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*req.CurrentPassword)); err != nil {
			util.RespondUnauthorized(c, "incorrect email or password")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			util.RespondInternalError(c, "Failed to update password")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.users.UpdateUser(c.Request.Context(), user); err != nil {
		logger.Log.Error("failed to update user", logger.WithUserID(user.ID), zap.Error(err))
		util.RespondInternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDetailResponse(user)})
}

// DeleteUser deletes the caller's own account along with their posts,
// follows, likes, and shares.
// DELETE /api/v1/users
func (h *Handlers) DeleteUser(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), userID); err != nil {
		logger.Log.Error("failed to delete user", logger.WithUserID(userID), zap.Error(err))
		util.RespondInternalError(c, "Failed to delete user")
		return
	}

	logger.Log.Info("user deleted", logger.WithUserID(userID))
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
