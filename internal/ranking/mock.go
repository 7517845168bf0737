package ranking

import (
	"context"
	"sync"
	"time"

	"github.com/diegohideky/poker-shark/internal/poker"
)

// MockScoreStore is a hand-rolled ScoreStore for tests. It is safe for
// concurrent use; the service runs its two window aggregations in parallel.
type MockScoreStore struct {
	mu sync.Mutex

	FindLastMatchFunc     func(ctx context.Context, teamID, gameID string, w Window) (*poker.Match, error)
	FindPreviousMatchFunc func(ctx context.Context, teamID, gameID string, before time.Time, w Window) (*poker.Match, error)
	AggregateScoresFunc   func(ctx context.Context, teamID, gameID string, through time.Time, w Window) ([]Entry, error)
	CountRoundsFunc       func(ctx context.Context, teamID, gameID string, through time.Time, w Window) (int, error)

	AggregateScoresCalls []time.Time
}

var _ ScoreStore = (*MockScoreStore)(nil)

func (m *MockScoreStore) FindLastMatch(ctx context.Context, teamID, gameID string, w Window) (*poker.Match, error) {
	if m.FindLastMatchFunc != nil {
		return m.FindLastMatchFunc(ctx, teamID, gameID, w)
	}
	return nil, poker.ErrNoMatch
}

func (m *MockScoreStore) FindPreviousMatch(ctx context.Context, teamID, gameID string, before time.Time, w Window) (*poker.Match, error) {
	if m.FindPreviousMatchFunc != nil {
		return m.FindPreviousMatchFunc(ctx, teamID, gameID, before, w)
	}
	return nil, poker.ErrNoMatch
}

func (m *MockScoreStore) AggregateScores(ctx context.Context, teamID, gameID string, through time.Time, w Window) ([]Entry, error) {
	m.mu.Lock()
	m.AggregateScoresCalls = append(m.AggregateScoresCalls, through)
	m.mu.Unlock()
	if m.AggregateScoresFunc != nil {
		return m.AggregateScoresFunc(ctx, teamID, gameID, through, w)
	}
	return nil, nil
}

func (m *MockScoreStore) CountRounds(ctx context.Context, teamID, gameID string, through time.Time, w Window) (int, error) {
	if m.CountRoundsFunc != nil {
		return m.CountRoundsFunc(ctx, teamID, gameID, through, w)
	}
	return 0, nil
}
