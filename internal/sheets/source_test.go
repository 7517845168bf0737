package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/diegohideky/poker-shark/internal/metrics"
	"github.com/diegohideky/poker-shark/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRanges = Ranges{
	Current:     "current!A2:C",
	Previous:    "previous!A2:C",
	Pot:         "pot!B1",
	AltCurrent:  "alt-current!A2:C",
	AltPrevious: "alt-previous!A2:C",
}

func newTestSource(rows map[string][][]string) (*Source, *MockValuesGetter) {
	getter := NewMock(rows)
	source := NewSource(getter, ranking.NewCoinConverter(105), testRanges, metrics.NewMock())
	return source, getter
}

func TestParseRows(t *testing.T) {
	t.Run("sorts by score and assigns positions", func(t *testing.T) {
		entries := parseRows([][]string{
			{"Bob", "R$ 10,00", "3"},
			{"Alice", "R$ 25,00", "3"},
			{"Carol", "-R$ 35,00", "3"},
		})
		require.Len(t, entries, 3)
		assert.Equal(t, "Alice", entries[0].Name)
		assert.Equal(t, 1, entries[0].Position)
		assert.EqualValues(t, 2500, entries[0].Score)
		assert.Equal(t, "Bob", entries[1].Name)
		assert.Equal(t, 2, entries[1].Position)
		assert.Equal(t, "Carol", entries[2].Name)
		assert.EqualValues(t, -3500, entries[2].Score)
	})

	t.Run("skips malformed rows", func(t *testing.T) {
		entries := parseRows([][]string{
			{"Alice", "R$ 25,00", "3"},
			{"TooShort"},
			{"BadScore", "not-money", "3"},
			{"BadMatches", "R$ 1,00", "many"},
			{"ZeroMatches", "R$ 1,00", "0"},
			{"Bob", "R$ 10,00", "2"},
		})
		require.Len(t, entries, 2)
		assert.Equal(t, "Alice", entries[0].Name)
		assert.Equal(t, "Bob", entries[1].Name)
	})

	t.Run("names double as player ids", func(t *testing.T) {
		entries := parseRows([][]string{{"Alice", "R$ 1,00", "1"}})
		require.Len(t, entries, 1)
		assert.Equal(t, "Alice", entries[0].PlayerID)
	})
}

func TestLeaderboard(t *testing.T) {
	source, _ := newTestSource(map[string][][]string{
		"current!A2:C": {
			{"Bob", "R$ 20,00", "4"},
			{"Alice", "R$ 10,00", "4"},
		},
		"previous!A2:C": {
			{"Alice", "R$ 15,00", "3"},
			{"Bob", "R$ 5,00", "3"},
		},
		"pot!B1": {{"R$ 120,00"}},
	})

	entries, pot, err := source.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	bob := entries[0]
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, 1, bob.Position)
	assert.Equal(t, ranking.StatusUp, bob.Status)
	assert.Equal(t, 1, bob.PositionDiff)
	assert.EqualValues(t, 500, bob.LastScore)
	// Rounds come from the top entry's match count: (20 + 4*105) * 100.
	assert.Equal(t, int64(44000), bob.Coins)

	alice := entries[1]
	assert.Equal(t, ranking.StatusDown, alice.Status)
	assert.EqualValues(t, 1500, alice.LastScore)

	assert.EqualValues(t, 12000, pot)
}

func TestLeaderboardAltSource(t *testing.T) {
	source, getter := newTestSource(map[string][][]string{
		"alt-current!A2:C":  {{"Alice", "R$ 1,00", "1"}},
		"alt-previous!A2:C": {},
	})

	entries, _, err := source.Leaderboard(context.Background(), "bruno-house")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, getter.Calls, "alt-current!A2:C")
	assert.Contains(t, getter.Calls, "alt-previous!A2:C")
	assert.NotContains(t, getter.Calls, "current!A2:C")
}

func TestLeaderboardFetchError(t *testing.T) {
	source, getter := newTestSource(nil)
	getter.Err = errors.New("quota exceeded")

	_, _, err := source.Leaderboard(context.Background(), "")
	assert.Error(t, err)
}

func TestPotIsNeverFatal(t *testing.T) {
	t.Run("missing cell", func(t *testing.T) {
		source, _ := newTestSource(map[string][][]string{
			"current!A2:C":  {{"Alice", "R$ 1,00", "1"}},
			"previous!A2:C": {},
			"pot!B1":        {},
		})
		_, pot, err := source.Leaderboard(context.Background(), "")
		require.NoError(t, err)
		assert.EqualValues(t, 0, pot)
	})

	t.Run("unparseable cell", func(t *testing.T) {
		source, _ := newTestSource(map[string][][]string{
			"current!A2:C":  {{"Alice", "R$ 1,00", "1"}},
			"previous!A2:C": {},
			"pot!B1":        {{"not-money"}},
		})
		_, pot, err := source.Leaderboard(context.Background(), "")
		require.NoError(t, err)
		assert.EqualValues(t, 0, pot)
	})
}
