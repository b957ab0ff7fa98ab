package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/repository"
)

type userUsecaser interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input repository.UpdateProfileInput) (*domain.User, error)
}

type UserHandler struct {
	uc     userUsecaser
	logger *slog.Logger
}

func NewUserHandler(uc userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger.With("component", "user_handler")}
}

type updateProfileRequest struct {
	Name  *string `json:"name"  binding:"omitempty,max=128"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GET /api/v1/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.uc.Profile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", profileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// PUT /api/v1/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	user, err := h.uc.UpdateProfile(c.Request.Context(), c.GetString("userID"), repository.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Profile updated successfully", toUserResponse(user))
}
