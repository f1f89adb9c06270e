package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "techstore-backend/internal/domains/user/model"
)

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "user:snapshot:abc", SnapshotKey("abc"))
}

func TestEncodeUserEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("ICT", 7*3600))
	u := &userModel.User{Name: "Minh", Email: "minh@example.com", Revision: 4}

	payload, err := encodeUserEvent("s-1", u, at)
	require.NoError(t, err)

	var ev UserEvent
	require.NoError(t, json.Unmarshal(payload, &ev))
	assert.Equal(t, "s-1", ev.SessionID)
	assert.Equal(t, uint64(4), ev.Revision)
	assert.Equal(t, "Minh", ev.User.Name)
	assert.True(t, at.Equal(ev.PublishedAt))
}

func TestEncodeUserEvent_NilUser(t *testing.T) {
	_, err := encodeUserEvent("s-1", nil, time.Now())
	assert.Error(t, err)
}
