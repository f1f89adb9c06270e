package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	userModel "techstore-backend/internal/domains/user/model"
)

const (
	// ChannelUserUpdated nhận một UserEvent mỗi khi session commit User mới
	ChannelUserUpdated = "user.updated"

	snapshotKeyPrefix = "user:snapshot:"
)

// SnapshotKey là key lưu User committed mới nhất của session
func SnapshotKey(sessionID string) string {
	return snapshotKeyPrefix + sessionID
}

// UserEvent là payload được SET và PUBLISH
type UserEvent struct {
	SessionID   string          `json:"session_id"`
	Revision    uint64          `json:"revision"`
	User        *userModel.User `json:"user"`
	PublishedAt time.Time       `json:"published_at"`
}

// UserPublisher đẩy User committed ra Redis cho các consumer bên ngoài
type UserPublisher struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewUserPublisher(rc *RedisClient, ttl time.Duration) *UserPublisher {
	return &UserPublisher{
		client: rc.Client,
		ttl:    ttl,
		now:    time.Now,
	}
}

func encodeUserEvent(sessionID string, u *userModel.User, at time.Time) ([]byte, error) {
	if u == nil {
		return nil, fmt.Errorf("encode user event: nil user")
	}
	return json.Marshal(UserEvent{
		SessionID:   sessionID,
		Revision:    u.Revision,
		User:        u,
		PublishedAt: at.UTC(),
	})
}

// PublishUser SET snapshot (TTL = session TTL) và PUBLISH trong một transaction
func (p *UserPublisher) PublishUser(ctx context.Context, sessionID string, u *userModel.User) error {
	payload, err := encodeUserEvent(sessionID, u, p.now())
	if err != nil {
		return err
	}

	pipe := p.client.TxPipeline()
	pipe.Set(ctx, SnapshotKey(sessionID), payload, p.ttl)
	pipe.Publish(ctx, ChannelUserUpdated, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish user snapshot: %w", err)
	}
	return nil
}

// Forget xoá snapshot khi session đóng
func (p *UserPublisher) Forget(ctx context.Context, sessionID string) error {
	if err := p.client.Del(ctx, SnapshotKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete user snapshot: %w", err)
	}
	return nil
}
