package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flocknet/flock/internal/auth"
	"github.com/flocknet/flock/internal/dto"
	"github.com/flocknet/flock/internal/logger"
	"github.com/flocknet/flock/internal/metrics"
	"github.com/flocknet/flock/internal/util"
)

// Register creates a new user account and returns a token
// POST /api/v1/users
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		util.RespondConflict(c, "Email already in use")
		return
	case errors.Is(err, auth.ErrUsernameExists):
		util.RespondConflict(c, "Username already in use")
		return
	case err != nil:
		logger.Log.Error("registration failed", zap.Error(err))
		util.RespondInternalError(c, "Failed to create user")
		return
	}

	metrics.Get().UsersRegisteredTotal.Inc()
	logger.Log.Info("user registered",
		logger.WithUserID(resp.User.ID),
		zap.String("username", resp.User.Username),
	)

	c.JSON(http.StatusCreated, gin.H{
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       dto.ToUserDetailResponse(&resp.User),
	})
}

// Authenticate logs a user in with email and password
// POST /api/v1/users/authenticate
func (h *Handlers) Authenticate(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		// Identical response for unknown email and wrong password.
		util.RespondUnauthorized(c, "incorrect email or password")
		return
	} else if err != nil {
		logger.Log.Error("login failed", zap.Error(err))
		util.RespondInternalError(c, "Failed to authenticate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       dto.ToUserDetailResponse(&resp.User),
	})
}
