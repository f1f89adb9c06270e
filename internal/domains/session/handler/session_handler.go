package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"techstore-backend/internal/domains/session"
	userModel "techstore-backend/internal/domains/user/model"
	"techstore-backend/internal/shared/middleware"
	"techstore-backend/internal/shared/response"
)

// SessionStore là phần store mà handler dùng
type SessionStore interface {
	Create(seed session.Seed) (*session.Session, error)
	Close(id string) error
}

// TokenIssuer ký session token
type TokenIssuer interface {
	GenerateSessionToken(sessionID string) (string, time.Time, error)
}

type SessionHandler struct {
	store  SessionStore
	tokens TokenIssuer
}

func NewSessionHandler(store SessionStore, tokens TokenIssuer) *SessionHandler {
	return &SessionHandler{
		store:  store,
		tokens: tokens,
	}
}

// CreateSessionResponse trả token cho shell
type CreateSessionResponse struct {
	SessionID string          `json:"session_id"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      *userModel.User `json:"user"`
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var seed session.Seed
	if err := c.ShouldBindJSON(&seed); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	s, err := h.store.Create(seed)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSeed) {
			response.ValidationFailed(c, err.Error(), []string{"user"})
			return
		}
		response.InternalServerError(c, "Failed to create session")
		return
	}

	token, expiresAt, err := h.tokens.GenerateSessionToken(s.ID)
	if err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("Failed to sign session token")
		_ = h.store.Close(s.ID)
		response.InternalServerError(c, "Failed to create session")
		return
	}

	response.Success(c, http.StatusCreated, "Session created successfully", CreateSessionResponse{
		SessionID: s.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      s.CurrentUser(),
	})
}

// CloseSession handles DELETE /session
func (h *SessionHandler) CloseSession(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	if err := h.store.Close(s.ID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		response.InternalServerError(c, "Failed to close session")
		return
	}

	response.Success(c, http.StatusOK, "Session closed", nil)
}

// GetUser handles GET /session/user
func (h *SessionHandler) GetUser(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "User retrieved successfully", s.CurrentUser())
}

// ReplaceUser handles PUT /session/user
// Snapshot mới từ storefront thay record và reset draft profile.
func (h *SessionHandler) ReplaceUser(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	var u userModel.User
	if err := c.ShouldBindJSON(&u); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	updated, err := s.Replace(&u)
	if err != nil {
		if errors.Is(err, session.ErrInvalidUser) {
			response.ValidationFailed(c, err.Error(), session.MissingIdentity(&u))
			return
		}
		if errors.Is(err, session.ErrSessionClosed) {
			response.Error(c, http.StatusGone, "Session is closed", "SESSION_CLOSED")
			return
		}
		response.InternalServerError(c, "Failed to replace user")
		return
	}

	response.Success(c, http.StatusOK, "User replaced successfully", updated)
}
