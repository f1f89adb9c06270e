package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techstore-backend/internal/domains/session"
	userModel "techstore-backend/internal/domains/user/model"
	"techstore-backend/pkg/jwt"
)

func setup(t *testing.T) (*gin.Engine, *jwt.Manager, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewManager("test-secret", time.Hour)
	store := session.NewStore(session.StoreConfig{TTL: time.Hour})
	t.Cleanup(store.CloseAll)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", SessionAuth(tokens, store), func(c *gin.Context) {
		s, ok := MustSession(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, s.ID)
	})
	return r, tokens, store
}

func get(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionAuth_ValidToken(t *testing.T) {
	r, tokens, store := setup(t)
	s, err := store.Create(session.Seed{User: &userModel.User{Name: "Minh", Email: "minh@example.com"}})
	require.NoError(t, err)

	token, _, err := tokens.GenerateSessionToken(s.ID)
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, s.ID, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestSessionAuth_Rejections(t *testing.T) {
	r, tokens, _ := setup(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not-a-jwt").Code)

	// token hợp lệ nhưng session không còn
	token, _, err := tokens.GenerateSessionToken("gone")
	require.NoError(t, err)
	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}
