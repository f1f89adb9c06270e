package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"techstore-backend/internal/config"
	notificationModel "techstore-backend/internal/domains/notification/model"
	"techstore-backend/internal/infrastructure/queue"
)

type deliverFlags struct {
	sessionID  string
	file       string // JSON array các notification
	title      string
	message    string
	kind       string
	link       string
	targetPage string
}

func newDeliverCommand() *cobra.Command {
	flags := new(deliverFlags)

	cmd := &cobra.Command{
		Use:   "deliver --session <id> (--file notifications.json | --title ... --message ...)",
		Short: "Enqueue a notification:deliver task for one session",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := flags.payload(time.Now())
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := queue.NewClient(asynq.RedisClientOpt{
				Addr:     cfg.Redis.Host,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			taskID, err := client.EnqueueDelivery(ctx, payload)
			if err != nil {
				return err
			}

			log.Info().
				Str("task_id", taskID).
				Str("session_id", payload.SessionID).
				Int("count", len(payload.Notifications)).
				Msg("Notifications enqueued")
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.sessionID, "session", "s", "", "target session id")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "JSON file with an array of notifications")
	cmd.Flags().StringVar(&flags.title, "title", "", "notification title")
	cmd.Flags().StringVar(&flags.message, "message", "", "notification message")
	cmd.Flags().StringVar(&flags.kind, "type", string(notificationModel.NotificationTypeSystem), "order | ai | promo | system")
	cmd.Flags().StringVar(&flags.link, "link", "", "optional link")
	cmd.Flags().StringVar(&flags.targetPage, "target-page", "", "optional page to open, e.g. ORDER_DETAIL")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

// payload dựng DeliverPayload từ file hoặc từ các flag đơn lẻ
func (f *deliverFlags) payload(now time.Time) (notificationModel.DeliverPayload, error) {
	p := notificationModel.DeliverPayload{SessionID: f.sessionID}
	if p.SessionID == "" {
		return p, notificationModel.ErrMissingSessionID
	}

	if f.file != "" {
		raw, err := os.ReadFile(f.file)
		if err != nil {
			return p, fmt.Errorf("read notifications file: %w", err)
		}
		if err := json.Unmarshal(raw, &p.Notifications); err != nil {
			return p, fmt.Errorf("%w: %v", notificationModel.ErrInvalidPayload, err)
		}
		for i := range p.Notifications {
			if p.Notifications[i].ID == "" {
				p.Notifications[i].ID = uuid.NewString()
			}
		}
		return p, nil
	}

	if f.title == "" {
		return p, fmt.Errorf("either --file or --title is required")
	}
	kind := notificationModel.NotificationType(f.kind)
	if !kind.IsValid() {
		return p, fmt.Errorf("invalid notification type %q", f.kind)
	}

	p.Notifications = []notificationModel.Notification{{
		ID:         uuid.NewString(),
		Title:      f.title,
		Message:    f.message,
		Timestamp:  now.Format("15:04 02/01/2006"),
		Type:       kind,
		Link:       f.link,
		TargetPage: notificationModel.Page(f.targetPage),
	}}
	return p, nil
}
