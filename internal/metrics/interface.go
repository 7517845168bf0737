package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRankingRequests()
	ObserveRankingDuration(duration float64)
	IncStoreErrors()
	IncSheetFetches()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
