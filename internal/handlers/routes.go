package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts all API routes on the engine. The auth middleware
// is injected so tests can substitute a simpler one.
func (h *Handlers) RegisterRoutes(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")

	// Public
	v1.POST("/users", h.Register)
	v1.POST("/users/authenticate", h.Authenticate)

	// Authenticated
	authed := v1.Group("")
	authed.Use(authMiddleware)
	{
		authed.GET("/users", h.ListUsers)
		authed.PUT("/users", h.UpdateUser)
		authed.DELETE("/users", h.DeleteUser)
		authed.GET("/users/:username", h.GetUser)
		authed.POST("/users/:username/follow", h.Follow)
		authed.DELETE("/users/:username/follow", h.Unfollow)
		authed.GET("/users/:username/follow", h.GetFollows)
		authed.GET("/users/:username/activity", h.GetUserActivity)
		authed.GET("/users/:username/posts", h.GetUserPosts)

		authed.GET("/feed", h.GetFeed)
		authed.GET("/notifications", h.GetNotifications)

		authed.POST("/posts", h.CreatePost)
		authed.GET("/posts/:id", h.GetPost)
		authed.GET("/posts/:id/replies", h.GetReplies)
		authed.DELETE("/posts/:id", h.DeletePost)
		authed.POST("/posts/:id/like", h.LikePost)
		authed.DELETE("/posts/:id/like", h.UnlikePost)
		authed.POST("/posts/:id/share", h.SharePost)
		authed.DELETE("/posts/:id/share", h.UnsharePost)
	}
}
