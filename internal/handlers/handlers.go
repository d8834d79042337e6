package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flocknet/flock/internal/activity"
	"github.com/flocknet/flock/internal/auth"
	"github.com/flocknet/flock/internal/database"
	"github.com/flocknet/flock/internal/repository"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	auth     *auth.Service
	users    repository.UserRepository
	posts    repository.PostRepository
	activity *activity.Service

	feedCacheTTL time.Duration
}

// NewHandlers creates a new handlers instance
func NewHandlers(authService *auth.Service, users repository.UserRepository, posts repository.PostRepository, activityService *activity.Service, feedCacheTTL time.Duration) *Handlers {
	return &Handlers{
		auth:         authService,
		users:        users,
		posts:        posts,
		activity:     activityService,
		feedCacheTTL: feedCacheTTL,
	}
}

// Health reports service and database health
// GET /health
func (h *Handlers) Health(c *gin.Context) {
	if err := database.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
