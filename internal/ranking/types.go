// Package ranking computes the league leaderboard: windowed score
// aggregation, comparison against the previous window, and the derived
// "coins" metric. It is a stateless read-side projection over the score
// store; nothing here is cached or persisted.
package ranking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/diegohideky/poker-shark/internal/money"
)

// Status is the direction a player moved on the board relative to the
// previous window.
type Status int

const (
	StatusSame Status = iota
	StatusUp
	StatusDown
)

func (s Status) String() string {
	switch s {
	case StatusUp:
		return "up"
	case StatusDown:
		return "down"
	default:
		return "same"
	}
}

// MarshalJSON renders the status as its wire string ("up", "down", "same").
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the wire string back into a Status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "up":
		*s = StatusUp
	case "down":
		*s = StatusDown
	case "same":
		*s = StatusSame
	default:
		return fmt.Errorf("unknown rank status %q", raw)
	}
	return nil
}

// Window is the time range scores are aggregated over. An unbounded window
// means full history.
type Window struct {
	Start   time.Time
	End     time.Time
	Bounded bool
}

// Entry is one aggregated leaderboard row for a single window. Position is an
// explicit field, not inferred from slice index, so re-sorting or filtering
// downstream cannot corrupt ranks.
type Entry struct {
	PlayerID string
	Name     string
	Score    money.Cents
	Matches  int
	Position int
}

// ComparedEntry decorates a current-window Entry with its delta against the
// previous window.
type ComparedEntry struct {
	Entry

	Coins         int64
	PositionDiff  int
	Status        Status
	LastScore     money.Cents
	LastPosition  int
	LastScoreDiff money.Cents
	LastCoins     int64
}
