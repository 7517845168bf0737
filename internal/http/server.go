package http

import (
	"net/http"

	"github.com/diegohideky/poker-shark/internal/config"
	"github.com/diegohideky/poker-shark/internal/league"
	"github.com/diegohideky/poker-shark/internal/metrics"
	"github.com/diegohideky/poker-shark/internal/money"
	"github.com/diegohideky/poker-shark/internal/notifier"
	"github.com/diegohideky/poker-shark/internal/processor"
	"github.com/diegohideky/poker-shark/internal/pubsub"
	"github.com/diegohideky/poker-shark/internal/ranking"
	"github.com/diegohideky/poker-shark/internal/sheets"
)

// NewServer wires the HTTP surface. legacy may be nil when no spreadsheet is
// configured; the legacy route then reports unavailable.
func NewServer(store league.LeagueStore, rankingSvc *ranking.Service, legacy *sheets.Source, formatter *money.Formatter, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Ranking:        rankingSvc,
		Legacy:         legacy,
		Formatter:      formatter,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("GET /ranking", Chain(s.RankingHandler(), paramsMiddleware))
	s.Router.Handle("GET /ranking/legacy", Chain(s.LegacyRankingHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/score", Chain(s.RecordScoreHandler(), paramsMiddleware))
	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("GET /history", Chain(s.PlayerHistoryHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/ranking", Chain(s.RankingCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
