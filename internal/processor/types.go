package processor

import (
	"github.com/diegohideky/poker-shark/internal/metrics"
	"github.com/diegohideky/poker-shark/internal/notifier"
	"github.com/diegohideky/poker-shark/internal/pubsub"
	"github.com/diegohideky/poker-shark/internal/ranking"
)

// Processor advances matches through the post-game pipeline.
type Processor struct {
	store       Store
	ranker      Ranker
	pubsub      pubsub.PubSubClient
	notifier    notifier.Notifier
	metrics     metrics.Metrics
	defaultUnit ranking.Unit
}
