package league

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/diegohideky/poker-shark/internal/money"
	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/ranking"
	"github.com/google/uuid"
)

// New creates a new LeagueStore backed by the given database.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// storeError tags a driver failure as retryable so callers can tell it apart
// from the empty-league condition.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, poker.ErrStoreUnavailable, err)
}

func (s *store) UpsertTeam(team poker.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO teams (id, name, page_name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, page_name = excluded.page_name;
	`, team.ID, team.Name, team.PageName)
	if err != nil {
		return storeError("upsert team", err)
	}
	return nil
}

func (s *store) UpsertGame(game poker.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO games (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name;
	`, game.ID, game.Name)
	if err != nil {
		return storeError("upsert game", err)
	}
	return nil
}

func (s *store) UpsertPlayer(player poker.Player) error {
	return s.UpsertPlayers([]poker.Player{player})
}

func (s *store) UpsertPlayers(players []poker.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return storeError("upsert players", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name;
	`)
	if err != nil {
		tx.Rollback()
		return storeError("upsert players", err)
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name); err != nil {
			tx.Rollback()
			return storeError("upsert players", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storeError("upsert players", err)
	}
	return nil
}

func (s *store) GetAllPlayers() ([]poker.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name FROM players ORDER BY name")
	if err != nil {
		return nil, storeError("get all players", err)
	}
	defer rows.Close()

	var players []poker.Player
	for rows.Next() {
		var p poker.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

func (s *store) CreateMatch(match *poker.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.ProcessingStatus == "" {
		match.ProcessingStatus = poker.StatusNew
	}

	_, err := s.db.Exec(`
		INSERT INTO matches (id, name, team_id, game_id, datetime, buy_in, add_on, processing_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			team_id = excluded.team_id,
			game_id = excluded.game_id,
			datetime = excluded.datetime,
			buy_in = excluded.buy_in,
			add_on = excluded.add_on;
	`, match.ID, match.Name, match.TeamID, match.GameID, match.Datetime.Unix(),
		int64(match.BuyIn), int64(match.AddOn), match.ProcessingStatus)
	if err != nil {
		return storeError("create match", err)
	}
	return nil
}

// scanMatch is a helper to scan a single match row.
func (s *store) scanMatch(scanner interface{ Scan(...any) error }) (*poker.Match, error) {
	var match poker.Match
	var datetime, buyIn, addOn int64

	err := scanner.Scan(&match.ID, &match.Name, &match.TeamID, &match.GameID,
		&datetime, &buyIn, &addOn, &match.ProcessingStatus)
	if err != nil {
		return nil, err
	}

	match.Datetime = time.Unix(datetime, 0).UTC()
	match.BuyIn = money.Cents(buyIn)
	match.AddOn = money.Cents(addOn)
	return &match, nil
}

const matchColumns = "id, name, team_id, game_id, datetime, COALESCE(buy_in, 0), COALESCE(add_on, 0), processing_status"

func (s *store) GetAllMatches(teamID, gameID string) ([]*poker.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + matchColumns + " FROM matches"
	var args []any
	switch {
	case teamID != "" && gameID != "":
		query += " WHERE team_id = ? AND game_id = ?"
		args = append(args, teamID, gameID)
	case teamID != "":
		query += " WHERE team_id = ?"
		args = append(args, teamID)
	case gameID != "":
		query += " WHERE game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY datetime DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storeError("get all matches", err)
	}
	defer rows.Close()

	var matches []*poker.Match
	for rows.Next() {
		match, err := s.scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// GetMatchesForProcessing retrieves all matches that are not yet in a completed state.
func (s *store) GetMatchesForProcessing() ([]*poker.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT "+matchColumns+" FROM matches WHERE processing_status != ? ORDER BY datetime ASC",
		poker.StatusCompleted)
	if err != nil {
		return nil, storeError("get matches for processing", err)
	}
	defer rows.Close()

	var matches []*poker.Match
	for rows.Next() {
		match, err := s.scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// UpdateProcessingStatus transitions a match to a new state.
func (s *store) UpdateProcessingStatus(matchID string, status poker.ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE matches SET processing_status = ? WHERE id = ?", status, matchID)
	if err != nil {
		return storeError("update processing status", err)
	}
	return nil
}

// RecordScore inserts or replaces a player's result for a match. The unique
// (match_id, player_id) constraint keeps one record per player per match.
func (s *store) RecordScore(rec *poker.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Status == "" {
		rec.Status = poker.PlayerEnrolled
	}

	_, err := s.db.Exec(`
		INSERT INTO match_players (id, match_id, player_id, score, rebuys, addons, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id, player_id) DO UPDATE SET
			score = excluded.score,
			rebuys = excluded.rebuys,
			addons = excluded.addons,
			status = excluded.status;
	`, rec.ID, rec.MatchID, rec.PlayerID, int64(rec.Score), rec.Rebuys, rec.Addons, rec.Status)
	if err != nil {
		return storeError("record score", err)
	}
	return nil
}

func (s *store) GetPlayerHistory(playerID, teamID, gameID string, offset, limit int) ([]poker.ScoreRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	where := " WHERE mp.player_id = ?"
	args := []any{playerID}
	if teamID != "" {
		where += " AND m.team_id = ?"
		args = append(args, teamID)
	}
	if gameID != "" {
		where += " AND m.game_id = ?"
		args = append(args, gameID)
	}

	var total int
	countQuery := "SELECT COUNT(mp.id) FROM match_players mp JOIN matches m ON m.id = mp.match_id" + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storeError("player history count", err)
	}

	query := `
		SELECT mp.id, mp.match_id, mp.player_id, p.name, m.team_id, m.game_id,
			mp.score, mp.rebuys, mp.addons, mp.status, m.datetime
		FROM match_players mp
		JOIN matches m ON m.id = mp.match_id
		JOIN players p ON p.id = mp.player_id` + where + `
		ORDER BY m.datetime ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, storeError("player history", err)
	}
	defer rows.Close()

	var records []poker.ScoreRecord
	for rows.Next() {
		var rec poker.ScoreRecord
		var score, datetime int64
		err := rows.Scan(&rec.ID, &rec.MatchID, &rec.PlayerID, &rec.PlayerName,
			&rec.TeamID, &rec.GameID, &score, &rec.Rebuys, &rec.Addons, &rec.Status, &datetime)
		if err != nil {
			log.Error("Failed to scan history row", "error", err)
			continue
		}
		rec.Score = money.Cents(score)
		rec.MatchDatetime = time.Unix(datetime, 0).UTC()
		records = append(records, rec)
	}
	return records, total, nil
}

// FindLastMatch returns the newest match for the team and game within the
// window, or poker.ErrNoMatch when the scope is empty.
func (s *store) FindLastMatch(ctx context.Context, teamID, gameID string, w ranking.Window) (*poker.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + matchColumns + " FROM matches WHERE team_id = ? AND game_id = ?"
	args := []any{teamID, gameID}
	if w.Bounded {
		query += " AND datetime BETWEEN ? AND ?"
		args = append(args, w.Start.Unix(), w.End.Unix())
	}
	query += " ORDER BY datetime DESC LIMIT 1"

	match, err := s.scanMatch(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, poker.ErrNoMatch
	}
	if err != nil {
		return nil, storeError("find last match", err)
	}
	return match, nil
}

// FindPreviousMatch returns the newest match strictly before the given
// instant, bounded below by the window start when the window is bounded.
func (s *store) FindPreviousMatch(ctx context.Context, teamID, gameID string, before time.Time, w ranking.Window) (*poker.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + matchColumns + " FROM matches WHERE team_id = ? AND game_id = ? AND datetime < ?"
	args := []any{teamID, gameID, before.Unix()}
	if w.Bounded {
		query += " AND datetime >= ?"
		args = append(args, w.Start.Unix())
	}
	query += " ORDER BY datetime DESC LIMIT 1"

	match, err := s.scanMatch(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, poker.ErrNoMatch
	}
	if err != nil {
		return nil, storeError("find previous match", err)
	}
	return match, nil
}

// AggregateScores groups score records per player over the window, summing
// scores and counting matches. Ties on the summed score are broken by player
// id ascending so repeated calls over identical data rank identically.
func (s *store) AggregateScores(ctx context.Context, teamID, gameID string, through time.Time, w ranking.Window) ([]ranking.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT mp.player_id, MAX(p.name), SUM(mp.score), COUNT(mp.id)
		FROM match_players mp
		JOIN matches m ON m.id = mp.match_id
		JOIN players p ON p.id = mp.player_id
		WHERE m.team_id = ? AND m.game_id = ? AND m.datetime <= ?`
	args := []any{teamID, gameID, through.Unix()}
	if w.Bounded {
		query += " AND m.datetime >= ?"
		args = append(args, w.Start.Unix())
	}
	query += `
		GROUP BY mp.player_id
		ORDER BY SUM(mp.score) DESC, mp.player_id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("aggregate scores", err)
	}
	defer rows.Close()

	entries := make([]ranking.Entry, 0)
	for rows.Next() {
		var e ranking.Entry
		var score int64
		if err := rows.Scan(&e.PlayerID, &e.Name, &score, &e.Matches); err != nil {
			return nil, storeError("aggregate scores scan", err)
		}
		e.Score = money.Cents(score)
		e.Position = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("aggregate scores rows", err)
	}
	return entries, nil
}

// CountRounds counts the distinct matches with score records in the window.
func (s *store) CountRounds(ctx context.Context, teamID, gameID string, through time.Time, w ranking.Window) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT COUNT(DISTINCT mp.match_id)
		FROM match_players mp
		JOIN matches m ON m.id = mp.match_id
		WHERE m.team_id = ? AND m.game_id = ? AND m.datetime <= ?`
	args := []any{teamID, gameID, through.Unix()}
	if w.Bounded {
		query += " AND m.datetime >= ?"
		args = append(args, w.Start.Unix())
	}

	var rounds int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&rounds); err != nil {
		return 0, storeError("count rounds", err)
	}
	return rounds, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"match_players", "matches", "players", "games", "teams"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
	}
}
