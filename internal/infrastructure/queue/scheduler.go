package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"techstore-backend/internal/shared"
	"techstore-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	sweepCron string
}

func NewScheduler(redis asynq.RedisClientOpt, sweepCron string) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.WarnLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		sweepCron: sweepCron,
	}
}

// RegisterSessionJobs đăng ký các cron job của session store
func (s *Scheduler) RegisterSessionJobs() error {
	return s.registerSweepSessionsJob()
}

// ================================================
// JOB: Sweep idle sessions (mặc định mỗi 5 phút)
// ================================================
func (s *Scheduler) registerSweepSessionsJob() error {
	task := asynq.NewTask(shared.TypeSweepSessions, nil)

	entryID, err := s.scheduler.Register(
		s.sweepCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(0),
		asynq.Timeout(time.Minute),
		// mỗi chu kỳ chỉ cần một lần sweep
		asynq.Unique(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepSessions job", err)
		return err
	}

	logger.Info("Registered SweepSessions job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     s.sweepCron,
	})
	return nil
}

// Start chạy scheduler trong goroutine riêng
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
