package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"techstore-backend/internal/domains/session"
	"techstore-backend/internal/shared/response"
	"techstore-backend/pkg/jwt"
)

const (
	sessionIDKey = "session_id"
	sessionKey   = "session"
)

// SessionResolver tìm session đang sống theo id
type SessionResolver interface {
	Get(id string) (*session.Session, error)
}

// SessionAuth - xác thực session token và gắn *session.Session vào context
func SessionAuth(tokens *jwt.Manager, sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify và parse JWT
		claims, err := tokens.ValidateSessionToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("Session token rejected")
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		// 4. Session phải còn sống (chưa đóng / chưa bị sweep)
		s, err := sessions.Get(claims.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				response.Error(c, 401, "session expired or closed", "SESSION_EXPIRED")
			} else {
				response.InternalServerError(c, "failed to load session")
			}
			c.Abort()
			return
		}

		c.Set(sessionIDKey, s.ID)
		c.Set(sessionKey, s)

		c.Next()
	}
}

// CurrentSession lấy session đã được SessionAuth gắn vào context
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok && s != nil
}

// MustSession trả lỗi 401 nếu không có session; handler chỉ cần return khi ok = false
func MustSession(c *gin.Context) (*session.Session, bool) {
	s, ok := CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "session not found in context")
		return nil, false
	}
	return s, true
}
