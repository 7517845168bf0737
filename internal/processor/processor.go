package processor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/diegohideky/poker-shark/internal/metrics"
	"github.com/diegohideky/poker-shark/internal/notifier"
	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/pubsub"
	"github.com/diegohideky/poker-shark/internal/ranking"
)

// New creates a new Processor. defaultUnit is the calendar window used for
// the leaderboard attached to result notifications.
func New(store Store, ranker Ranker, notifier notifier.Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, defaultUnit ranking.Unit) *Processor {
	return &Processor{
		store:       store,
		ranker:      ranker,
		pubsub:      pubsub,
		notifier:    notifier,
		metrics:     metrics,
		defaultUnit: defaultUnit,
	}
}

// ProcessMatches fetches matches that need processing and advances them through the state machine.
func (p *Processor) ProcessMatches(ctx context.Context, dryRun bool) {
	log.Info("Starting match processing...")
	matches, err := p.store.GetMatchesForProcessing()
	if err != nil {
		log.Error("Failed to get matches for processing", "error", err)
		return
	}

	if len(matches) == 0 {
		log.Info("No matches to process.")
		return
	}

	log.Info("Found matches to process", "count", len(matches))
	for _, match := range matches {
		startTime := time.Now()
		p.processMatch(ctx, match, dryRun)
		p.metrics.ObserveRankingDuration(time.Since(startTime).Seconds())
	}
	log.Info("Match processing finished.")
}

func (p *Processor) processMatch(ctx context.Context, match *poker.Match, dryRun bool) {
	log.Info("Processing match", "matchID", match.ID, "initial_status", match.ProcessingStatus)
	for {
		currentState := match.ProcessingStatus

		switch currentState {
		case poker.StatusNew:
			// Scores are recorded; hand the match to the notification
			// pipeline via pubsub so the push endpoint picks it up.
			log.Info("Match is new. Publishing result event.", "matchID", match.ID)
			if !dryRun {
				if err := p.pubsub.SendMessage(ctx, pubsub.EventNotifyResult, match); err != nil {
					log.Error("Failed to publish result event", "error", err, "matchID", match.ID)
					return
				}
			}
			p.updateStatus(match, poker.StatusResultNotified, dryRun)

		case poker.StatusResultNotified:
			log.Info("Match result has been notified. Marking match as complete.", "matchID", match.ID)
			p.updateStatus(match, poker.StatusCompleted, dryRun)

		case poker.StatusCompleted:
			log.Debug("Match is complete. No further processing needed.", "matchID", match.ID)
			return

		default:
			log.Warn("Unknown processing status", "status", currentState, "matchID", match.ID)
			return
		}

		// If the status hasn't changed, we're done with this match for now.
		if match.ProcessingStatus == currentState {
			break
		}
	}
	log.Info("Finished processing match", "matchID", match.ID, "final_status", match.ProcessingStatus)
}

// NotifyResult computes the refreshed leaderboard for the match's team and
// game and sends the result notification.
func (p *Processor) NotifyResult(ctx context.Context, match *poker.Match, dryRun bool) {
	entries, err := p.ranker.Leaderboard(ctx, match.TeamID, match.GameID, p.defaultUnit)
	if err != nil {
		p.metrics.IncStoreErrors()
		log.Error("Failed to compute leaderboard for result notification", "error", err, "matchID", match.ID)
		return
	}

	if err := p.notifier.SendResultNotification(match, entries, dryRun); err != nil {
		log.Error("Failed to send result notification", "error", err, "matchID", match.ID)
	}
}

func (p *Processor) updateStatus(match *poker.Match, newStatus poker.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update match status", "matchID", match.ID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateProcessingStatus(match.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "matchID", match.ID)
	} else {
		log.Debug("Successfully updated status", "matchID", match.ID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
