package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flocknet/flock/internal/dto"
	"github.com/flocknet/flock/internal/logger"
	"github.com/flocknet/flock/internal/metrics"
	"github.com/flocknet/flock/internal/models"
	"github.com/flocknet/flock/internal/repository"
	"github.com/flocknet/flock/internal/util"
)

// CreatePost creates a new post, or a reply when parent_id is set
// POST /api/v1/posts
func (h *Handlers) CreatePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	post := models.Post{
		UserID:      userID,
		TextContent: req.TextContent,
		ParentID:    req.ParentID,
	}

	err := h.posts.CreatePost(c.Request.Context(), &post)
	if errors.Is(err, repository.ErrPostNotFound) {
		util.RespondNotFound(c, "Parent post")
		return
	} else if err != nil {
		logger.Log.Error("failed to create post", logger.WithUserID(userID), zap.Error(err))
		util.RespondInternalError(c, "Failed to create post")
		return
	}

	postType := "post"
	if post.ParentID != nil {
		postType = "reply"
	}
	metrics.Get().PostsCreatedTotal.WithLabelValues(postType).Inc()

	created, err := h.posts.GetPost(c.Request.Context(), post.ID)
	if err != nil {
		util.RespondInternalError(c, "Failed to load post")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": dto.ToPostResponse(created)})
}

// GetPost returns a post with the caller's liked/shared flags
// GET /api/v1/posts/:id
func (h *Handlers) GetPost(c *gin.Context) {
	postID := c.Param("id")
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		util.RespondNotFound(c, "Post")
		return
	} else if err != nil {
		util.RespondInternalError(c, "Failed to fetch post")
		return
	}

	resp := dto.ToPostResponse(post)

	liked, err := h.posts.HasLiked(c.Request.Context(), userID, postID)
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch post")
		return
	}
	shared, err := h.posts.HasShared(c.Request.Context(), userID, postID)
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch post")
		return
	}
	resp.Liked = &liked
	resp.Shared = &shared

	c.JSON(http.StatusOK, gin.H{"post": resp})
}

// GetUserPosts returns a user's authored posts, newest first
// GET /api/v1/users/:username/posts
func (h *Handlers) GetUserPosts(c *gin.Context) {
	targetID, ok := h.resolveUsername(c)
	if !ok {
		return
	}

	posts, err := h.posts.GetPostsByUser(c.Request.Context(), targetID)
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": dto.ToPostResponses(posts)})
}

// GetReplies returns direct replies to a post, oldest first
// GET /api/v1/posts/:id/replies
func (h *Handlers) GetReplies(c *gin.Context) {
	postID := c.Param("id")

	if _, err := h.posts.GetPost(c.Request.Context(), postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			util.RespondNotFound(c, "Post")
			return
		}
		util.RespondInternalError(c, "Failed to fetch post")
		return
	}

	replies, err := h.posts.GetReplies(c.Request.Context(), postID)
	if err != nil {
		util.RespondInternalError(c, "Failed to fetch replies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": dto.ToPostResponses(replies)})
}

// DeletePost deletes a post the caller authored, along with its reply
// thread and interactions
// DELETE /api/v1/posts/:id
func (h *Handlers) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		util.RespondNotFound(c, "Post")
		return
	} else if err != nil {
		util.RespondInternalError(c, "Failed to fetch post")
		return
	}

	if post.UserID != userID {
		util.RespondForbidden(c, "You can only delete your own posts")
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), postID); err != nil {
		logger.Log.Error("failed to delete post",
			logger.WithPostID(postID),
			logger.WithUserID(userID),
			zap.Error(err),
		)
		util.RespondInternalError(c, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// LikePost likes a post
// POST /api/v1/posts/:id/like
func (h *Handlers) LikePost(c *gin.Context) {
	h.interact(c, "like", "add")
}

// UnlikePost removes a like
// DELETE /api/v1/posts/:id/like
func (h *Handlers) UnlikePost(c *gin.Context) {
	h.interact(c, "like", "remove")
}

// SharePost shares a post
// POST /api/v1/posts/:id/share
func (h *Handlers) SharePost(c *gin.Context) {
	h.interact(c, "share", "add")
}

// UnsharePost removes a share
// DELETE /api/v1/posts/:id/share
func (h *Handlers) UnsharePost(c *gin.Context) {
	h.interact(c, "share", "remove")
}

// interact runs one like/share add-or-remove against a post and maps the
// repository sentinels onto the API's conflict and not-found responses.
func (h *Handlers) interact(c *gin.Context, kind, action string) {
	postID := c.Param("id")
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if _, err := h.posts.GetPost(c.Request.Context(), postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			util.RespondNotFound(c, "Post")
			return
		}
		util.RespondInternalError(c, "Failed to fetch post")
		return
	}

	var err error
	switch {
	case kind == "like" && action == "add":
		err = h.posts.LikePost(c.Request.Context(), userID, postID)
	case kind == "like" && action == "remove":
		err = h.posts.UnlikePost(c.Request.Context(), userID, postID)
	case kind == "share" && action == "add":
		err = h.posts.SharePost(c.Request.Context(), userID, postID)
	case kind == "share" && action == "remove":
		err = h.posts.UnsharePost(c.Request.Context(), userID, postID)
	}

	switch {
	case errors.Is(err, repository.ErrAlreadyLiked):
		util.RespondConflict(c, "You already liked this post")
		return
	case errors.Is(err, repository.ErrAlreadyShared):
		util.RespondConflict(c, "You already shared this post")
		return
	case errors.Is(err, repository.ErrNotLiked):
		util.RespondNotFound(c, "Like")
		return
	case errors.Is(err, repository.ErrNotShared):
		util.RespondNotFound(c, "Share")
		return
	case err != nil:
		logger.Log.Error("interaction failed",
			logger.WithPostID(postID),
			logger.WithUserID(userID),
			zap.String("kind", kind),
			zap.String("action", action),
			zap.Error(err),
		)
		util.RespondInternalError(c, "Failed to update post")
		return
	}

	metrics.Get().InteractionsTotal.WithLabelValues(kind, action).Inc()

	status := http.StatusOK
	if action == "add" {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"message": "ok"})
}
