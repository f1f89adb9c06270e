package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techstore-backend/internal/domains/notification/model"
	"techstore-backend/internal/domains/session"
	userModel "techstore-backend/internal/domains/user/model"
	"techstore-backend/internal/shared/middleware"
	"techstore-backend/pkg/jwt"
)

func newRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewManager("test-secret", time.Hour)
	store := session.NewStore(session.StoreConfig{TTL: time.Hour})
	t.Cleanup(store.CloseAll)

	s, err := store.Create(session.Seed{
		User: &userModel.User{Name: "Minh", Email: "minh@example.com"},
		Notifications: []model.Notification{
			{ID: "n1", Title: "Đơn hàng #ORD-1 đã giao", Type: model.NotificationTypeOrder, TargetPage: model.PageOrderDetail},
			{ID: "n2", Title: "Flash sale", Type: model.NotificationTypePromo, Link: "/sale"},
			{ID: "n3", Title: "Bảo trì", Type: model.NotificationTypeSystem, IsRead: true},
		},
	})
	require.NoError(t, err)
	token, _, err := tokens.GenerateSessionToken(s.ID)
	require.NoError(t, err)

	h := NewNotificationHandler()
	r := gin.New()
	g := r.Group("/session/notifications", middleware.SessionAuth(tokens, store))
	g.GET("", h.ListNotifications)
	g.PUT("/read-all", h.MarkAllAsRead)
	g.PUT("/:id/read", h.MarkAsRead)
	return r, token
}

func call(t *testing.T, r *gin.Engine, token, method, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body.Data
}

func TestNotificationFlow(t *testing.T) {
	r, token := newRouter(t)

	code, data := call(t, r, token, http.MethodGet, "/session/notifications")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, data["unread_count"])
	assert.Len(t, data["notifications"], 3)

	code, data = call(t, r, token, http.MethodPut, "/session/notifications/n1/read")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data["changed"])
	assert.Equal(t, "ORDER_DETAIL", data["target_page"])
	assert.EqualValues(t, 1, data["unread_count"])

	// lần hai là no-op
	_, data = call(t, r, token, http.MethodPut, "/session/notifications/n1/read")
	assert.Equal(t, false, data["changed"])

	_, data = call(t, r, token, http.MethodPut, "/session/notifications/unknown/read")
	assert.Equal(t, false, data["changed"])
	assert.EqualValues(t, 1, data["unread_count"])

	_, data = call(t, r, token, http.MethodPut, "/session/notifications/read-all")
	assert.EqualValues(t, 1, data["updated_count"])
	assert.EqualValues(t, 0, data["unread_count"])
}
