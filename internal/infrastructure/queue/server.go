package queue

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"techstore-backend/internal/shared"
)

// Server bọc asynq.Server; task được xử lý ngay trong process API vì
// session state chỉ sống trong memory của process này.
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// Handlers là các job handler mà server đăng ký
type Handlers struct {
	DeliverNotification asynq.Handler
	SweepSessions       asynq.Handler
}

func NewServer(redis asynq.RedisClientOpt, concurrency int, handlers Handlers) *Server {
	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeDeliverNotification, handlers.DeliverNotification)
	mux.Handle(shared.TypeSweepSessions, handlers.SweepSessions)

	srv := asynq.NewServer(
		redis,
		asynq.Config{
			Queues: map[string]int{
				shared.QueueNotification: 10,
				shared.QueueMaintenance:  1,
			},
			Concurrency: concurrency,
			LogLevel:    asynq.WarnLevel,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().
					Err(err).
					Str("task_type", task.Type()).
					Msg("[Asynq] Task failed")
			}),
		},
	)

	return &Server{server: srv, mux: mux}
}

// Start không block
func (s *Server) Start() error {
	log.Info().Msg("[Worker] Starting...")
	return s.server.Start(s.mux)
}

func (s *Server) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.server.Shutdown()
	log.Info().Msg("[Worker] Gracefully stopped")
}
