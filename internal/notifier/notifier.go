package notifier

import (
	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches: the refreshed leaderboard after a match's scores land.
	SendResultNotification(match *poker.Match, entries []ranking.ComparedEntry, dryRun bool) error
	// For slash commands
	SendRanking(entries []ranking.ComparedEntry, dryRun bool) error

	// For formatting responses for slash commands
	FormatRankingResponse(entries []ranking.ComparedEntry) (any, error)
}
