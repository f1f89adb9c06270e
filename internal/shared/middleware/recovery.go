package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"techstore-backend/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("session_id", c.GetString(sessionIDKey)).
					Interface("error", err).
					Msg("Panic recovered")

				response.Error(c, http.StatusInternalServerError, "Internal server error", "SYS_001")
				c.Abort()
			}
		}()

		c.Next()
	}
}
