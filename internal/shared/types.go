package shared

// Task types chạy qua asynq
const (
	TypeDeliverNotification = "notification:deliver"
	TypeSweepSessions       = "session:sweep"
)

// Queue names
const (
	QueueNotification = "notifications"
	QueueMaintenance  = "maintenance"
)
