package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncStatsRecorded()
	IncStatsFailed()
	IncLeaderboardBuilds()
	ObserveRecordDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists simple named counters across restarts, next to the
// live Prometheus series.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
