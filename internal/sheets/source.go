package sheets

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/diegohideky/poker-shark/internal/metrics"
	"github.com/diegohideky/poker-shark/internal/money"
	"github.com/diegohideky/poker-shark/internal/ranking"
)

// Ranges holds the spreadsheet ranges the legacy source reads from. Alt
// ranges serve the secondary league ("bruno-house") when configured.
type Ranges struct {
	Current     string
	Previous    string
	Pot         string
	AltCurrent  string
	AltPrevious string
}

// Source computes the same compared ranking as the database-backed engine,
// but from spreadsheet rows of [name, formattedScore, matchCount]. Names are
// the join key; the sheet carries no player ids. Rounds played are proxied by
// the top entry's match count, the only total the sheet exposes.
type Source struct {
	getter  ValuesGetter
	coins   *ranking.CoinConverter
	ranges  Ranges
	metrics metrics.Metrics
}

// NewSource wires the legacy source with an injected sheet client.
func NewSource(getter ValuesGetter, coins *ranking.CoinConverter, ranges Ranges, metrics metrics.Metrics) *Source {
	return &Source{
		getter:  getter,
		coins:   coins,
		ranges:  ranges,
		metrics: metrics,
	}
}

// parseRows turns raw sheet rows into a positioned ranking. Malformed rows
// (missing cells, non-numeric score or match count, zero matches) are skipped
// rather than failing the whole computation.
func parseRows(values [][]string) []ranking.Entry {
	entries := make([]ranking.Entry, 0, len(values))
	for _, row := range values {
		if len(row) < 3 {
			continue
		}
		name := row[0]
		score, err := money.ParseCurrency(row[1])
		if err != nil {
			log.Warn("Skipping sheet row with unparseable score", "name", name, "score", row[1])
			continue
		}
		matches, err := strconv.Atoi(row[2])
		if err != nil || matches == 0 {
			log.Warn("Skipping sheet row with unusable match count", "name", name, "matches", row[2])
			continue
		}
		entries = append(entries, ranking.Entry{
			PlayerID: name,
			Name:     name,
			Score:    score,
			Matches:  matches,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

func (s *Source) rangesFor(source string) (string, string) {
	if source == "bruno-house" && s.ranges.AltCurrent != "" {
		return s.ranges.AltCurrent, s.ranges.AltPrevious
	}
	return s.ranges.Current, s.ranges.Previous
}

// Leaderboard fetches the current and previous ranges and diffs them. The
// second return value is the shared pot ("caixinha") balance in cents.
func (s *Source) Leaderboard(ctx context.Context, source string) ([]ranking.ComparedEntry, money.Cents, error) {
	currentRange, previousRange := s.rangesFor(source)

	currentValues, err := s.getter.Values(ctx, currentRange)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch current ranking range: %w", err)
	}
	s.metrics.IncSheetFetches()

	previousValues, err := s.getter.Values(ctx, previousRange)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch previous ranking range: %w", err)
	}
	s.metrics.IncSheetFetches()

	current := parseRows(currentValues)
	previous := parseRows(previousValues)

	rounds := 0
	if len(current) > 0 {
		rounds = current[0].Matches
	}
	lastRounds := 0
	if len(previous) > 0 {
		lastRounds = previous[0].Matches
	}

	pot := s.pot(ctx)
	return ranking.Diff(current, previous, s.coins, rounds, lastRounds), pot, nil
}

// pot reads the shared pot cell; a missing or malformed cell is zero, never
// an error.
func (s *Source) pot(ctx context.Context) money.Cents {
	if s.ranges.Pot == "" {
		return 0
	}
	values, err := s.getter.Values(ctx, s.ranges.Pot)
	if err != nil {
		log.Warn("Failed to fetch pot range", "error", err)
		return 0
	}
	s.metrics.IncSheetFetches()
	if len(values) == 0 || len(values[0]) == 0 {
		return 0
	}
	pot, err := money.ParseCurrency(values[0][0])
	if err != nil {
		log.Warn("Unparseable pot cell", "cell", values[0][0])
		return 0
	}
	return pot
}
