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

type Server struct {
	Store          league.LeagueStore
	Ranking        *ranking.Service
	Legacy         *sheets.Source
	Formatter      *money.Formatter
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
