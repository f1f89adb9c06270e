package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	notificationModel "techstore-backend/internal/domains/notification/model"
	"techstore-backend/internal/shared"
)

// Client enqueue task cho event source bên ngoài
type Client struct {
	client *asynq.Client
}

func NewClient(redis asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redis)}
}

// NewDeliverTask dựng task notification:deliver
func NewDeliverTask(payload notificationModel.DeliverPayload) (*asynq.Task, error) {
	if payload.SessionID == "" {
		return nil, notificationModel.ErrMissingSessionID
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal deliver payload: %w", err)
	}
	return asynq.NewTask(shared.TypeDeliverNotification, b,
		asynq.Queue(shared.QueueNotification),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueDelivery đẩy notification vào feed của một session
func (c *Client) EnqueueDelivery(ctx context.Context, payload notificationModel.DeliverPayload) (string, error) {
	task, err := NewDeliverTask(payload)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("enqueue deliver task: %w", err)
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
