package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flocknet/flock/internal/dto"
	apierrors "github.com/flocknet/flock/internal/errors"
	"github.com/flocknet/flock/internal/logger"
	"github.com/flocknet/flock/internal/metrics"
	"github.com/flocknet/flock/internal/repository"
	"github.com/flocknet/flock/internal/util"
)

// resolveUsername looks up the path :username, responding 404 with the
// standard message when unknown.
func (h *Handlers) resolveUsername(c *gin.Context) (string, bool) {
	username := c.Param("username")
	user, err := h.users.GetUserByUsername(c.Request.Context(), username)
	if errors.Is(err, repository.ErrUserNotFound) {
		util.RespondWithAPIError(c, apierrors.NotFoundMessage(fmt.Sprintf("User '%s' not found", username)))
		return "", false
	} else if err != nil {
		util.RespondInternalError(c, "Failed to fetch user")
		return "", false
	}
	return user.ID, true
}

// Follow creates a follow edge from the caller to :username
// POST /api/v1/users/:username/follow
func (h *Handlers) Follow(c *gin.Context) {
	callerID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	targetID, ok := h.resolveUsername(c)
	if !ok {
		return
	}

	err := h.users.CreateFollow(c.Request.Context(), callerID, targetID)
	if errors.Is(err, repository.ErrAlreadyFollowing) {
		util.RespondConflict(c, "Already following this user")
		return
	} else if err != nil {
		logger.Log.Error("failed to create follow",
			logger.WithUserID(callerID),
			zap.String("target_id", targetID),
			zap.Error(err),
		)
		util.RespondInternalError(c, "Failed to follow user")
		return
	}

	metrics.Get().FollowsTotal.WithLabelValues("follow").Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "Now following " + c.Param("username")})
}

// Unfollow removes the caller's follow edge to :username
// DELETE /api/v1/users/:username/follow
func (h *Handlers) Unfollow(c *gin.Context) {
	callerID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	targetID, ok := h.resolveUsername(c)
	if !ok {
		return
	}

	err := h.users.DeleteFollow(c.Request.Context(), callerID, targetID)
	if errors.Is(err, repository.ErrNotFollowing) {
		util.RespondWithAPIError(c, apierrors.NotFoundMessage("You are not following this user"))
		return
	} else if err != nil {
		logger.Log.Error("failed to delete follow",
			logger.WithUserID(callerID),
			zap.String("target_id", targetID),
			zap.Error(err),
		)
		util.RespondInternalError(c, "Failed to unfollow user")
		return
	}

	metrics.Get().FollowsTotal.WithLabelValues("unfollow").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed " + c.Param("username")})
}

// GetFollows returns the full follower and following lists for :username
// GET /api/v1/users/:username/follow
func (h *Handlers) GetFollows(c *gin.Context) {
	targetID, ok := h.resolveUsername(c)
	if !ok {
		return
	}

	followers, err := h.users.GetFollowers(c.Request.Context(), targetID)
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch follows")
		return
	}
	following, err := h.users.GetFollowing(c.Request.Context(), targetID)
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch follows")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": dto.ToUserResponses(followers),
		"following": dto.ToUserResponses(following),
	})
}
