package processor

import (
	"context"

	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/ranking"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetMatchesForProcessing() ([]*poker.Match, error)
	UpdateProcessingStatus(matchID string, status poker.ProcessingStatus) error
}

// Ranker computes the leaderboard a result notification carries.
type Ranker interface {
	Leaderboard(ctx context.Context, teamID, gameID string, unit ranking.Unit) ([]ranking.ComparedEntry, error)
}
