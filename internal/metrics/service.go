package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	RankingRequests    prometheus.Counter
	RankingDuration    prometheus.Histogram
	StoreErrors        prometheus.Counter
	SheetFetches       prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RankingRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poker_ranking_requests_total",
			Help: "The total number of leaderboard computations requested.",
		}),
		RankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "poker_ranking_duration_seconds",
			Help:    "The duration of individual leaderboard computations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poker_store_errors_total",
			Help: "The total number of score store failures.",
		}),
		SheetFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poker_sheet_fetches_total",
			Help: "The total number of legacy spreadsheet range fetches.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poker_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poker_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poker_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RankingRequests,
		s.RankingDuration,
		s.StoreErrors,
		s.SheetFetches,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRankingRequests() {
	s.RankingRequests.Inc()
}

func (s *Service) ObserveRankingDuration(duration float64) {
	s.RankingDuration.Observe(duration)
}

func (s *Service) IncStoreErrors() {
	s.StoreErrors.Inc()
}

func (s *Service) IncSheetFetches() {
	s.SheetFetches.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
