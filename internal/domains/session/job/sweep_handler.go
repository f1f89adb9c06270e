package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"techstore-backend/pkg/logger"
)

// Sweeper đóng các session idle quá TTL
type Sweeper interface {
	Sweep(now time.Time) int
}

// ================================================
// SWEEP IDLE SESSIONS JOB HANDLER
// ================================================

type SweepSessionsHandler struct {
	sweeper Sweeper
	now     func() time.Time
}

func NewSweepSessionsHandler(sweeper Sweeper) *SweepSessionsHandler {
	return &SweepSessionsHandler{
		sweeper: sweeper,
		now:     time.Now,
	}
}

func (h *SweepSessionsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logger.Debug("Starting SweepSessions job")
	closed := h.sweeper.Sweep(h.now())
	logger.Info("Completed SweepSessions job", map[string]interface{}{
		"closed_count": closed,
	})
	return nil
}
