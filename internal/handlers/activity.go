package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flocknet/flock/internal/cache"
	"github.com/flocknet/flock/internal/dto"
	"github.com/flocknet/flock/internal/logger"
	"github.com/flocknet/flock/internal/middleware"
	"github.com/flocknet/flock/internal/util"
)

// GetUserActivity returns one user's POSTED/LIKED/SHARED entries,
// newest first
// GET /api/v1/users/:username/activity
func (h *Handlers) GetUserActivity(c *gin.Context) {
	targetID, ok := h.resolveUsername(c)
	if !ok {
		return
	}

	entries, err := h.activity.UserActivity(c.Request.Context(), targetID)
	if err != nil {
		logger.Log.Error("failed to build activity", zap.String("target_id", targetID), zap.Error(err))
		util.RespondInternalError(c, "Failed to fetch activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}

// GetFeed returns the merged activity of everyone the caller follows,
// newest first. Recent results are served from Redis when available.
// GET /api/v1/feed
func (h *Handlers) GetFeed(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	cacheKey := "feed:" + userID
	redisClient := cache.GetRedisClient()
	if redisClient != nil {
		if raw, err := redisClient.Get(c.Request.Context(), cacheKey); err == nil {
			middleware.RecordFeedCacheHit("follow_feed")
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(raw))
			return
		} else if !cache.IsNil(err) {
			logger.Log.Warn("feed cache read failed", logger.WithUserID(userID), zap.Error(err))
		}
		middleware.RecordFeedCacheMiss("follow_feed")
	}

	start := time.Now()

	followedIDs, err := h.users.GetFollowedIDs(c.Request.Context(), userID)
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch feed")
		return
	}

	entries, err := h.activity.Feed(c.Request.Context(), followedIDs)
	if err != nil {
		logger.Log.Error("failed to build feed", logger.WithUserID(userID), zap.Error(err))
		util.RespondInternalError(c, "Failed to fetch feed")
		return
	}

	middleware.RecordFeedGeneration("follow_feed", time.Since(start))

	body, err := json.Marshal(gin.H{"feed": entries})
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch feed")
		return
	}

	if redisClient != nil {
		if err := redisClient.SetEx(c.Request.Context(), cacheKey, body, h.feedCacheTTL); err != nil {
			logger.Log.Warn("feed cache write failed", logger.WithUserID(userID), zap.Error(err))
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetNotifications returns reply/like/share interactions on the caller's
// posts, newest first
// GET /api/v1/notifications
func (h *Handlers) GetNotifications(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	entries, err := h.activity.Notifications(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error("failed to build notifications", logger.WithUserID(userID), zap.Error(err))
		util.RespondInternalError(c, "Failed to fetch notifications")
		return
	}

	if entries == nil {
		entries = []dto.NotificationEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": entries})
}
