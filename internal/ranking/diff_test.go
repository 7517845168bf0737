package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoins(t *testing.T) {
	coins := NewCoinConverter(105)

	// (10.00 + 2*105) * 100
	assert.Equal(t, int64(22000), coins.Coins(1000, 2))
	assert.Equal(t, int64(0), coins.Coins(0, 0))
	// Negative scores eat into the round bonus: (-50.00 + 105) * 100
	assert.Equal(t, int64(5500), coins.Coins(-5000, 1))

	fractional := NewCoinConverter(0.5)
	// (1.00 + 3*0.5) * 100 = 250, exact despite the fractional multiplier
	assert.Equal(t, int64(250), fractional.Coins(100, 3))
}

func TestDiff(t *testing.T) {
	coins := NewCoinConverter(105)

	t.Run("two players over two matches", func(t *testing.T) {
		// Night one: Alice +15.00, Bob -15.00. Night two: Alice -5.00, Bob +5.00.
		current := []Entry{
			{PlayerID: "alice", Name: "Alice", Score: 1000, Matches: 2, Position: 1},
			{PlayerID: "bob", Name: "Bob", Score: -1000, Matches: 2, Position: 2},
		}
		previous := []Entry{
			{PlayerID: "alice", Name: "Alice", Score: 1500, Matches: 1, Position: 1},
			{PlayerID: "bob", Name: "Bob", Score: -1500, Matches: 1, Position: 2},
		}

		out := Diff(current, previous, coins, 2, 1)
		require.Len(t, out, 2)

		alice := out[0]
		assert.Equal(t, 1, alice.Position)
		assert.Equal(t, StatusSame, alice.Status)
		assert.Equal(t, 0, alice.PositionDiff)
		assert.EqualValues(t, 1500, alice.LastScore)
		assert.Equal(t, 1, alice.LastPosition)
		assert.EqualValues(t, -500, alice.LastScoreDiff)
		assert.Equal(t, int64(22000), alice.Coins)     // (10 + 2*105) * 100
		assert.Equal(t, int64(12000), alice.LastCoins) // (15 + 1*105) * 100

		bob := out[1]
		assert.Equal(t, StatusSame, bob.Status)
		assert.EqualValues(t, -1500, bob.LastScore)
		assert.EqualValues(t, 500, bob.LastScoreDiff)
	})

	t.Run("movement directions and distances", func(t *testing.T) {
		current := []Entry{
			{PlayerID: "c", Score: 300, Position: 1},
			{PlayerID: "a", Score: 200, Position: 2},
			{PlayerID: "b", Score: 100, Position: 3},
		}
		previous := []Entry{
			{PlayerID: "a", Score: 300, Position: 1},
			{PlayerID: "b", Score: 200, Position: 2},
			{PlayerID: "c", Score: 100, Position: 3},
		}

		out := Diff(current, previous, coins, 1, 1)
		require.Len(t, out, 3)

		assert.Equal(t, StatusUp, out[0].Status)
		assert.Equal(t, 2, out[0].PositionDiff)
		assert.Equal(t, 3, out[0].LastPosition)

		assert.Equal(t, StatusDown, out[1].Status)
		assert.Equal(t, 1, out[1].PositionDiff)

		assert.Equal(t, StatusDown, out[2].Status)
		assert.Equal(t, 1, out[2].PositionDiff)
	})

	t.Run("player absent from previous window", func(t *testing.T) {
		current := []Entry{
			{PlayerID: "a", Score: 500, Position: 1},
			{PlayerID: "new", Score: 250, Position: 2},
		}
		previous := []Entry{
			{PlayerID: "a", Score: 400, Position: 1},
		}

		out := Diff(current, previous, coins, 3, 2)
		require.Len(t, out, 2)

		fresh := out[1]
		assert.Equal(t, StatusSame, fresh.Status)
		assert.Equal(t, 2, fresh.PositionDiff) // their own position, absent before
		assert.EqualValues(t, 0, fresh.LastScore)
		assert.Equal(t, 0, fresh.LastPosition)
		assert.EqualValues(t, 250, fresh.LastScoreDiff)
		assert.Equal(t, int64(21000), fresh.LastCoins) // (0 + 2*105) * 100
	})

	t.Run("empty previous window zeroes every comparison", func(t *testing.T) {
		current := []Entry{
			{PlayerID: "a", Score: 500, Position: 1},
			{PlayerID: "b", Score: -500, Position: 2},
		}

		out := Diff(current, nil, coins, 1, 0)
		require.Len(t, out, 2)
		for i, e := range out {
			assert.Equal(t, StatusSame, e.Status)
			assert.Equal(t, i+1, e.PositionDiff)
			assert.EqualValues(t, 0, e.LastScore)
			assert.Equal(t, 0, e.LastPosition)
			assert.Equal(t, e.Score, e.LastScoreDiff)
			assert.Equal(t, int64(0), e.LastCoins)
		}
	})

	t.Run("empty current window yields empty output", func(t *testing.T) {
		out := Diff(nil, []Entry{{PlayerID: "a", Score: 100, Position: 1}}, coins, 0, 1)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("output order follows current", func(t *testing.T) {
		current := []Entry{
			{PlayerID: "b", Score: 200, Position: 1},
			{PlayerID: "a", Score: 100, Position: 2},
		}
		out := Diff(current, nil, coins, 1, 0)
		require.Len(t, out, 2)
		assert.Equal(t, "b", out[0].PlayerID)
		assert.Equal(t, "a", out[1].PlayerID)
	})
}

func TestStatusJSON(t *testing.T) {
	for status, wire := range map[Status]string{
		StatusSame: `"same"`,
		StatusUp:   `"up"`,
		StatusDown: `"down"`,
	} {
		data, err := status.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, wire, string(data))

		var parsed Status
		require.NoError(t, parsed.UnmarshalJSON(data))
		assert.Equal(t, status, parsed)
	}

	var s Status
	assert.Error(t, s.UnmarshalJSON([]byte(`"sideways"`)))
}
