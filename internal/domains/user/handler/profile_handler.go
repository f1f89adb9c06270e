package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderModel "techstore-backend/internal/domains/order/model"
	"techstore-backend/internal/domains/session"
	"techstore-backend/internal/domains/user"
	"techstore-backend/internal/domains/user/model"
	"techstore-backend/internal/domains/user/service"
	"techstore-backend/internal/shared"
	"techstore-backend/internal/shared/middleware"
	"techstore-backend/internal/shared/response"
)

// ProfileHandler phục vụ profile editor của session
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// ProfileResponse gộp record committed, draft và số liệu đơn hàng
type ProfileResponse struct {
	User   *model.User        `json:"user"`
	Editor service.EditorView `json:"editor"`
	Stats  orderModel.Stats   `json:"stats"`
}

func profileOf(s *session.Session) ProfileResponse {
	return ProfileResponse{
		User:   s.CurrentUser(),
		Editor: s.Editor().View(),
		Stats:  s.Stats(),
	}
}

// GetProfile handles GET /session/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved successfully", profileOf(s))
}

// EditProfile handles PATCH /session/profile
// Chỉ sửa draft, User committed không đổi.
func (h *ProfileHandler) EditProfile(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	var patch service.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	view := s.Editor().Edit(patch)
	response.Success(c, http.StatusOK, "Draft updated", view)
}

// CommitProfile handles POST /session/profile/commit
func (h *ProfileHandler) CommitProfile(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	if _, err := s.Editor().Commit(c.Request.Context(), s); err != nil {
		switch {
		case shared.IsValidationError(err):
			response.ValidationFailed(c, "Profile is invalid", shared.ValidationFields(err))
		case errors.Is(err, user.ErrSaveInProgress):
			response.Conflict(c, "Profile save already in progress", "SAVE_IN_PROGRESS")
		case errors.Is(err, user.ErrStaleDraft):
			response.Conflict(c, "Profile changed, review the draft and save again", "PROFILE_CHANGED")
		case errors.Is(err, session.ErrSessionClosed):
			response.Error(c, http.StatusGone, "Session is closed", "SESSION_CLOSED")
		default:
			response.InternalServerError(c, "Failed to save profile")
		}
		return
	}

	response.Success(c, http.StatusOK, "Profile saved successfully", profileOf(s))
}
