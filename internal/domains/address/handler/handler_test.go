package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techstore-backend/internal/domains/address/model"
	"techstore-backend/internal/domains/address/service"
	"techstore-backend/internal/domains/session"
	userModel "techstore-backend/internal/domains/user/model"
	"techstore-backend/internal/shared/middleware"
	"techstore-backend/pkg/jwt"
)

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		Addresses []model.Address `json:"addresses"`
		Address   *model.Address  `json:"address"`
		Changed   bool            `json:"changed"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Details struct {
			Fields []string `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

type testServer struct {
	router *gin.Engine
	token  string
	sess   *session.Session
}

func newTestServer(t *testing.T, addresses ...model.Address) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewManager("test-secret", time.Hour)
	store := session.NewStore(session.StoreConfig{TTL: time.Hour})
	t.Cleanup(store.CloseAll)

	s, err := store.Create(session.Seed{User: &userModel.User{
		Name: "Minh", Email: "minh@example.com", Addresses: addresses,
	}})
	require.NoError(t, err)
	token, _, err := tokens.GenerateSessionToken(s.ID)
	require.NoError(t, err)

	n := 0
	h := NewAddressHandler(service.NewAddressService(func() string {
		n++
		return fmt.Sprintf("addr-new-%d", n)
	}))

	r := gin.New()
	g := r.Group("/session/addresses", middleware.SessionAuth(tokens, store))
	g.GET("", h.ListAddresses)
	g.GET("/default", h.GetDefaultAddress)
	g.POST("", h.CreateAddress)
	g.PUT("/:id", h.UpdateAddress)
	g.DELETE("/:id", h.DeleteAddress)
	g.PUT("/:id/default", h.SetDefaultAddress)

	return &testServer{router: r, token: token, sess: s}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func form(name string, isDefault bool) model.AddressForm {
	return model.AddressForm{
		Name: name, Phone: "0901234567", Province: "TP. Hồ Chí Minh", District: "Quận 1",
		Ward: "Bến Nghé", Detail: "1 Lê Lợi", IsDefault: isDefault,
	}
}

func TestCreateAddress_DefaultMovesToNewest(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/session/addresses", form("A", true))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, model.AddressTypeHome, env.Data.Address.Type)

	w, env = ts.do(t, http.MethodPost, "/session/addresses", form("B", true))
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, env.Data.Addresses, 2)
	assert.False(t, env.Data.Addresses[0].IsDefault)
	assert.True(t, env.Data.Addresses[1].IsDefault)

	assert.Equal(t, uint64(3), ts.sess.CurrentUser().Revision)
}

func TestCreateAddress_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/session/addresses", model.AddressForm{Name: "A", Phone: " "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, []string{"detail", "district", "phone", "province", "ward"}, env.Error.Details.Fields)
	assert.Equal(t, uint64(1), ts.sess.CurrentUser().Revision)
}

func TestUpdateAddress_StaleIDIsNoOp(t *testing.T) {
	ts := newTestServer(t, model.Address{ID: "a1", Name: "Nhà", IsDefault: true})

	w, env := ts.do(t, http.MethodPut, "/session/addresses/missing", form("X", false))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Data.Changed)
	assert.Len(t, env.Data.Addresses, 1)
}

func TestDeleteAddress_RefusesDefaultWhileOthersExist(t *testing.T) {
	ts := newTestServer(t,
		model.Address{ID: "a1", Name: "Nhà", IsDefault: true},
		model.Address{ID: "a2", Name: "Công ty"},
	)

	w, env := ts.do(t, http.MethodDelete, "/session/addresses/a1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CANNOT_DELETE_DEFAULT", env.Error.Code)

	w, env = ts.do(t, http.MethodDelete, "/session/addresses/a2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Data.Changed)

	// default là address cuối cùng thì xoá được
	w, env = ts.do(t, http.MethodDelete, "/session/addresses/a1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data.Addresses)

	w, env = ts.do(t, http.MethodGet, "/session/addresses/default", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_HAS_NO_ADDRESS", env.Error.Code)
}

func TestSetDefaultAddress(t *testing.T) {
	ts := newTestServer(t,
		model.Address{ID: "a1", Name: "Nhà", IsDefault: true},
		model.Address{ID: "a2", Name: "Công ty"},
	)

	w, env := ts.do(t, http.MethodPut, "/session/addresses/a2/default", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Data.Changed)
	assert.False(t, env.Data.Addresses[0].IsDefault)
	assert.True(t, env.Data.Addresses[1].IsDefault)

	w, env = ts.do(t, http.MethodPut, "/session/addresses/zzz/default", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Data.Changed)
}

func TestAddress_ClosedSession(t *testing.T) {
	ts := newTestServer(t)
	ts.sess.Close()

	// token vẫn resolve được vì session chưa bị gỡ khỏi store
	w, env := ts.do(t, http.MethodPost, "/session/addresses", form("A", true))
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "SESSION_CLOSED", env.Error.Code)
}
