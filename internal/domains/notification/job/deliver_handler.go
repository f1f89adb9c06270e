package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"techstore-backend/internal/domains/notification/model"
	"techstore-backend/internal/domains/notification/service"
)

// FeedLocator tìm feed của một session đang sống
type FeedLocator interface {
	FeedFor(sessionID string) (*service.Feed, error)
}

// ================================================
// DELIVER NOTIFICATION JOB HANDLER
// ================================================

// DeliverNotificationHandler đưa notification từ event source vào feed của session
type DeliverNotificationHandler struct {
	feeds FeedLocator
}

func NewDeliverNotificationHandler(feeds FeedLocator) *DeliverNotificationHandler {
	return &DeliverNotificationHandler{feeds: feeds}
}

// ProcessTask là entrypoint của job.
// Session không còn (hết hạn / đã đóng) thì bỏ task, không retry.
func (h *DeliverNotificationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.DeliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("%w: %v: %w", model.ErrInvalidPayload, err, asynq.SkipRetry)
	}
	if payload.SessionID == "" {
		return fmt.Errorf("%w: %w", model.ErrMissingSessionID, asynq.SkipRetry)
	}

	feed, err := h.feeds.FeedFor(payload.SessionID)
	if err != nil {
		log.Info().
			Err(err).
			Str("session_id", payload.SessionID).
			Msg("Notification target session is gone, dropping")
		return nil
	}

	added := feed.Receive(payload.Notifications...)

	log.Info().
		Str("session_id", payload.SessionID).
		Int("received", len(payload.Notifications)).
		Int("added", added).
		Msg("Notifications delivered")

	return nil
}
