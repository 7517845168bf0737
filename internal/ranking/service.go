package ranking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/diegohideky/poker-shark/internal/poker"
)

// ScoreStore is the persistence port the engine reads from. Implementations
// must return poker.ErrNoMatch when the scope holds no matches and wrap any
// driver failure in poker.ErrStoreUnavailable.
type ScoreStore interface {
	// FindLastMatch returns the most recent match for the team and game,
	// constrained to the window when it is bounded.
	FindLastMatch(ctx context.Context, teamID, gameID string, w Window) (*poker.Match, error)
	// FindPreviousMatch returns the most recent match strictly before the
	// given instant, bounded below by the window start when bounded.
	FindPreviousMatch(ctx context.Context, teamID, gameID string, before time.Time, w Window) (*poker.Match, error)
	// AggregateScores groups score records per player with match datetime
	// <= through (and >= window start when bounded), summing scores and
	// counting matches, sorted by score descending with deterministic
	// tie-breaks and explicit 1-based positions.
	AggregateScores(ctx context.Context, teamID, gameID string, through time.Time, w Window) ([]Entry, error)
	// CountRounds returns the number of distinct matches with score records
	// in the same range AggregateScores would cover.
	CountRounds(ctx context.Context, teamID, gameID string, through time.Time, w Window) (int, error)
}

// Service orchestrates a full leaderboard computation per request.
type Service struct {
	store ScoreStore
	coins *CoinConverter
	loc   *time.Location
	now   func() time.Time
}

// NewService builds the ranking service. loc pins the calendar-unit timezone;
// nil means UTC.
func NewService(store ScoreStore, coins *CoinConverter, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store: store,
		coins: coins,
		loc:   loc,
		now:   time.Now,
	}
}

// windowSlice holds one window's aggregation results.
type windowSlice struct {
	entries []Entry
	rounds  int
	err     error
}

// Leaderboard computes the compared ranking for a team and game. A league
// with no matches in scope yields an empty (non-nil) slice, not an error.
func (s *Service) Leaderboard(ctx context.Context, teamID, gameID string, unit Unit) ([]ComparedEntry, error) {
	w := ResolvePeriod(unit, s.now(), s.loc)

	last, err := s.store.FindLastMatch(ctx, teamID, gameID, w)
	if err != nil {
		if errors.Is(err, poker.ErrNoMatch) {
			log.Debug("No matches in scope, returning empty ranking", "teamID", teamID, "gameID", gameID, "unit", unit)
			return []ComparedEntry{}, nil
		}
		return nil, err
	}

	var penultimate *poker.Match
	prev, err := s.store.FindPreviousMatch(ctx, teamID, gameID, last.Datetime, w)
	switch {
	case err == nil:
		penultimate = prev
	case errors.Is(err, poker.ErrNoMatch):
		// Single match in the window: every comparison degrades to zero.
	default:
		return nil, err
	}

	// The two windows are independent reads; run them concurrently.
	var wg sync.WaitGroup
	var cur, pre windowSlice
	wg.Add(1)
	go func() {
		defer wg.Done()
		cur = s.aggregateWindow(ctx, teamID, gameID, last.Datetime, w)
	}()
	if penultimate != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pre = s.aggregateWindow(ctx, teamID, gameID, penultimate.Datetime, w)
		}()
	}
	wg.Wait()

	if cur.err != nil {
		return nil, cur.err
	}
	if pre.err != nil {
		return nil, pre.err
	}

	return Diff(cur.entries, pre.entries, s.coins, cur.rounds, pre.rounds), nil
}

func (s *Service) aggregateWindow(ctx context.Context, teamID, gameID string, through time.Time, w Window) windowSlice {
	entries, err := s.store.AggregateScores(ctx, teamID, gameID, through, w)
	if err != nil {
		return windowSlice{err: err}
	}
	rounds, err := s.store.CountRounds(ctx, teamID, gameID, through, w)
	if err != nil {
		return windowSlice{err: err}
	}
	return windowSlice{entries: entries, rounds: rounds}
}
