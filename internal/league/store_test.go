package league_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/diegohideky/poker-shark/internal/database"
	"github.com/diegohideky/poker-shark/internal/league"
	"github.com/diegohideky/poker-shark/internal/money"
	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.LeagueStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := league.New(db)
	teardown := func() {
		dbTeardown()
	}

	return store, db, teardown
}

// seedLeague inserts a team, a game and four players.
func seedLeague(t *testing.T, store league.LeagueStore) {
	t.Helper()

	require.NoError(t, store.UpsertTeam(poker.Team{ID: "t1", Name: "Home League"}))
	require.NoError(t, store.UpsertGame(poker.Game{ID: "g1", Name: "Texas Hold'em"}))
	require.NoError(t, store.UpsertPlayers([]poker.Player{
		{ID: "p1", Name: "Alice"},
		{ID: "p2", Name: "Bob"},
		{ID: "p3", Name: "Carol"},
		{ID: "p4", Name: "Dave"},
	}))
}

func cents(v int64) money.Cents {
	return money.Cents(v)
}

func TestUpsertAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedLeague(t, store)

	assert.True(t, store.IsKnownPlayer("p1"))
	assert.False(t, store.IsKnownPlayer("p9"))

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Len(t, players, 4)

	// Upserting an existing player updates the name without duplicating.
	require.NoError(t, store.UpsertPlayer(poker.Player{ID: "p1", Name: "Alice B."}))
	players, err = store.GetAllPlayers()
	require.NoError(t, err)
	assert.Len(t, players, 4)
}

func TestCreateAndListMatches(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedLeague(t, store)

	at := time.Date(2025, 5, 10, 21, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateMatch(&poker.Match{
		ID: "m1", Name: "Friday Night", TeamID: "t1", GameID: "g1",
		Datetime: at, BuyIn: 5000, AddOn: 2500,
	}))

	matches, err := store.GetAllMatches("t1", "g1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].ID)
	assert.Equal(t, at, matches[0].Datetime)
	assert.EqualValues(t, 5000, matches[0].BuyIn)
	assert.Equal(t, poker.StatusNew, matches[0].ProcessingStatus)

	matches, err = store.GetAllMatches("other", "g1")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindLastAndPreviousMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	seedLeague(t, store)

	first := time.Date(2025, 5, 3, 21, 0, 0, 0, time.UTC)
	second := time.Date(2025, 5, 10, 21, 0, 0, 0, time.UTC)
	third := time.Date(2025, 5, 17, 21, 0, 0, 0, time.UTC)
	for id, at := range map[string]time.Time{"m1": first, "m2": second, "m3": third} {
		require.NoError(t, store.CreateMatch(&poker.Match{ID: id, TeamID: "t1", GameID: "g1", Datetime: at}))
	}

	unbounded := ranking.Window{}

	last, err := store.FindLastMatch(ctx, "t1", "g1", unbounded)
	require.NoError(t, err)
	assert.Equal(t, "m3", last.ID)

	prev, err := store.FindPreviousMatch(ctx, "t1", "g1", last.Datetime, unbounded)
	require.NoError(t, err)
	assert.Equal(t, "m2", prev.ID)

	t.Run("window bounds the search", func(t *testing.T) {
		w := ranking.Window{
			Start:   time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC),
			End:     time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC),
			Bounded: true,
		}
		last, err := store.FindLastMatch(ctx, "t1", "g1", w)
		require.NoError(t, err)
		assert.Equal(t, "m2", last.ID)

		// m1 is before the window start, so there is no previous match.
		_, err = store.FindPreviousMatch(ctx, "t1", "g1", last.Datetime, w)
		assert.ErrorIs(t, err, poker.ErrNoMatch)
	})

	t.Run("empty scope", func(t *testing.T) {
		_, err := store.FindLastMatch(ctx, "t1", "other-game", unbounded)
		assert.ErrorIs(t, err, poker.ErrNoMatch)
	})
}

func TestAggregateScores(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	seedLeague(t, store)

	first := time.Date(2025, 5, 3, 21, 0, 0, 0, time.UTC)
	second := time.Date(2025, 5, 10, 21, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateMatch(&poker.Match{ID: "m1", TeamID: "t1", GameID: "g1", Datetime: first}))
	require.NoError(t, store.CreateMatch(&poker.Match{ID: "m2", TeamID: "t1", GameID: "g1", Datetime: second}))

	for playerID, score := range map[string]int64{"p1": 1500, "p2": -500, "p3": -1000} {
		require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m1", PlayerID: playerID, Score: cents(score)}))
	}
	for playerID, score := range map[string]int64{"p1": -500, "p2": 1200, "p3": -700} {
		require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m2", PlayerID: playerID, Score: cents(score)}))
	}

	unbounded := ranking.Window{}

	entries, err := store.AggregateScores(ctx, "t1", "g1", second, unbounded)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// p1: 1000, p2: 700, p3: -1700, descending with explicit positions.
	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.EqualValues(t, 1000, entries[0].Score)
	assert.Equal(t, 2, entries[0].Matches)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "p2", entries[1].PlayerID)
	assert.Equal(t, 2, entries[1].Position)
	assert.Equal(t, "p3", entries[2].PlayerID)
	assert.Equal(t, 3, entries[2].Position)

	// The pot only moves around the table; the column sums to zero.
	var total int64
	for _, e := range entries {
		total += int64(e.Score)
	}
	assert.EqualValues(t, 0, total)

	t.Run("through excludes later matches", func(t *testing.T) {
		entries, err := store.AggregateScores(ctx, "t1", "g1", first, unbounded)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.EqualValues(t, 1500, entries[0].Score)
		assert.Equal(t, 1, entries[0].Matches)
	})

	t.Run("ties break on player id ascending", func(t *testing.T) {
		require.NoError(t, store.CreateMatch(&poker.Match{ID: "m3", TeamID: "t1", GameID: "g1", Datetime: second.Add(time.Hour)}))
		// p4 ends up level with p1 on 1000 total.
		require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m3", PlayerID: "p4", Score: cents(1000)}))
		require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m3", PlayerID: "p2", Score: cents(-1000)}))

		entries, err := store.AggregateScores(ctx, "t1", "g1", second.Add(time.Hour), unbounded)
		require.NoError(t, err)
		require.Len(t, entries, 4)
		assert.Equal(t, "p1", entries[0].PlayerID)
		assert.Equal(t, "p4", entries[1].PlayerID)
	})

	t.Run("empty scope yields empty non-nil slice", func(t *testing.T) {
		entries, err := store.AggregateScores(ctx, "t1", "other-game", second, unbounded)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})
}

func TestCountRounds(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	seedLeague(t, store)

	first := time.Date(2025, 5, 3, 21, 0, 0, 0, time.UTC)
	second := time.Date(2025, 5, 10, 21, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateMatch(&poker.Match{ID: "m1", TeamID: "t1", GameID: "g1", Datetime: first}))
	require.NoError(t, store.CreateMatch(&poker.Match{ID: "m2", TeamID: "t1", GameID: "g1", Datetime: second}))
	require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m1", PlayerID: "p1", Score: cents(100)}))
	require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m1", PlayerID: "p2", Score: cents(-100)}))
	require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m2", PlayerID: "p1", Score: cents(-50)}))

	unbounded := ranking.Window{}

	rounds, err := store.CountRounds(ctx, "t1", "g1", second, unbounded)
	require.NoError(t, err)
	// Multiple records per match still count as one round.
	assert.Equal(t, 2, rounds)

	rounds, err = store.CountRounds(ctx, "t1", "g1", first, unbounded)
	require.NoError(t, err)
	assert.Equal(t, 1, rounds)
}

func TestRecordScoreUpsert(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	seedLeague(t, store)

	at := time.Date(2025, 5, 3, 21, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateMatch(&poker.Match{ID: "m1", TeamID: "t1", GameID: "g1", Datetime: at}))

	require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m1", PlayerID: "p1", Score: cents(100)}))
	require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: "m1", PlayerID: "p1", Score: cents(250)}))

	entries, err := store.AggregateScores(ctx, "t1", "g1", at, ranking.Window{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// One record per player per match: the second write replaced the first.
	assert.EqualValues(t, 250, entries[0].Score)
	assert.Equal(t, 1, entries[0].Matches)
}

func TestGetPlayerHistory(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedLeague(t, store)

	base := time.Date(2025, 5, 1, 21, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		require.NoError(t, store.CreateMatch(&poker.Match{ID: id, TeamID: "t1", GameID: "g1", Datetime: base.AddDate(0, 0, i*7)}))
		require.NoError(t, store.RecordScore(&poker.ScoreRecord{MatchID: id, PlayerID: "p1", Score: cents(int64(100 * (i + 1)))}))
	}

	records, total, err := store.GetPlayerHistory("p1", "t1", "g1", 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, records, 3)
	// Oldest first.
	assert.EqualValues(t, 100, records[0].Score)
	assert.Equal(t, "Alice", records[0].PlayerName)
	assert.Equal(t, base, records[0].MatchDatetime)

	records, total, err = store.GetPlayerHistory("p1", "t1", "g1", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, records, 2)
	assert.EqualValues(t, 400, records[0].Score)
}

func TestProcessingLifecycle(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedLeague(t, store)
	at := time.Date(2025, 5, 3, 21, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateMatch(&poker.Match{ID: "m1", TeamID: "t1", GameID: "g1", Datetime: at}))

	pending, err := store.GetMatchesForProcessing()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, poker.StatusNew, pending[0].ProcessingStatus)

	require.NoError(t, store.UpdateProcessingStatus("m1", poker.StatusCompleted))

	pending, err = store.GetMatchesForProcessing()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedLeague(t, store)
	at := time.Date(2025, 5, 3, 21, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateMatch(&poker.Match{ID: "m1", TeamID: "t1", GameID: "g1", Datetime: at}))

	store.Clear()

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Empty(t, players)

	matches, err := store.GetAllMatches("", "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
