package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/diegohideky/poker-shark/internal/money"
	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/ranking"
	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

// rankingRow is the wire shape of one leaderboard entry. Scores cross the API
// boundary in major currency units; everything upstream is cents.
type rankingRow struct {
	Name               string         `json:"name"`
	Score              float64        `json:"score"`
	FormattedScore     string         `json:"formattedScore"`
	Matches            int            `json:"matches"`
	Position           int            `json:"position"`
	Coins              int64          `json:"coins"`
	PositionDiff       int            `json:"positionDiff"`
	Status             ranking.Status `json:"status"`
	LastScore          float64        `json:"lastScore"`
	LastFormattedScore string         `json:"lastFormattedScore"`
	LastPosition       int            `json:"lastPosition"`
	LastScoreDiff      float64        `json:"lastScoreDiff"`
	LastCoins          int64          `json:"lastCoins"`
}

func (s *Server) rankingRows(entries []ranking.ComparedEntry) []rankingRow {
	rows := make([]rankingRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, rankingRow{
			Name:               e.Name,
			Score:              e.Score.Major(),
			FormattedScore:     s.Formatter.FormatCurrency(e.Score),
			Matches:            e.Matches,
			Position:           e.Position,
			Coins:              e.Coins,
			PositionDiff:       e.PositionDiff,
			Status:             e.Status,
			LastScore:          e.LastScore.Major(),
			LastFormattedScore: s.Formatter.FormatCurrency(e.LastScore),
			LastPosition:       e.LastPosition,
			LastScoreDiff:      e.LastScoreDiff.Major(),
			LastCoins:          e.LastCoins,
		})
	}
	return rows
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Store.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			log.Info("Successfully cleared match from store", "matchID", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

// RankingHandler serves the compared leaderboard for a team and game. An
// empty unit means full history; a league with no matches yields an empty
// ranking, not an error.
func (s *Server) RankingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.Metrics.IncRankingRequests()

		teamID := r.URL.Query().Get("teamId")
		gameID := r.URL.Query().Get("gameId")
		if teamID == "" || gameID == "" {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": "teamId and gameId are required"})
			return
		}

		unit, err := ranking.ParseUnit(r.URL.Query().Get("unit"))
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}

		entries, err := s.Ranking.Leaderboard(r.Context(), teamID, gameID, unit)
		if err != nil {
			s.Metrics.IncStoreErrors()
			log.Error("Failed to compute ranking", "teamID", teamID, "gameID", gameID, "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to compute ranking"})
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"ranking": s.rankingRows(entries)})
		s.Metrics.ObserveRankingDuration(time.Since(start).Seconds())
	}
}

// LegacyRankingHandler serves the spreadsheet-backed ranking, including the
// shared pot balance ("caixinha").
func (s *Server) LegacyRankingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Legacy == nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "Legacy ranking source is not configured"})
			return
		}

		source := r.URL.Query().Get("source")
		entries, pot, err := s.Legacy.Leaderboard(r.Context(), source)
		if err != nil {
			log.Error("Failed to compute legacy ranking", "source", source, "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to compute legacy ranking"})
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"ranking":  s.rankingRows(entries),
			"caixinha": pot.Major(),
		})
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string    `json:"name"`
			TeamID   string    `json:"teamId"`
			GameID   string    `json:"gameId"`
			Datetime time.Time `json:"datetime"`
			BuyIn    float64   `json:"buyIn"`
			AddOn    float64   `json:"addOn"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON body"})
			return
		}
		if req.TeamID == "" || req.GameID == "" {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": "teamId and gameId are required"})
			return
		}
		if req.Datetime.IsZero() {
			req.Datetime = time.Now()
		}

		match := &poker.Match{
			ID:               uuid.NewString(),
			Name:             req.Name,
			TeamID:           req.TeamID,
			GameID:           req.GameID,
			Datetime:         req.Datetime,
			BuyIn:            money.Cents(math.Round(req.BuyIn * 100)),
			AddOn:            money.Cents(math.Round(req.AddOn * 100)),
			ProcessingStatus: poker.StatusNew,
		}
		if err := s.Store.CreateMatch(match); err != nil {
			log.Error("Failed to create match", "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create match"})
			return
		}

		log.Info("Created match", "matchID", match.ID, "teamID", match.TeamID, "gameID", match.GameID)
		respondJSON(w, http.StatusCreated, match)
	}
}

// RecordScoreHandler records one player's result for a match. Recording a
// score leaves the match in the NEW state; the processor picks it up and
// publishes the result event.
func (s *Server) RecordScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID  string  `json:"matchId"`
			PlayerID string  `json:"playerId"`
			Score    float64 `json:"score"`
			Rebuys   int     `json:"rebuys"`
			Addons   int     `json:"addons"`
			Status   string  `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON body"})
			return
		}
		if req.MatchID == "" || req.PlayerID == "" {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": "matchId and playerId are required"})
			return
		}
		status := poker.PlayerStatus(req.Status)
		if status == "" {
			status = poker.PlayerFinished
		}

		rec := &poker.ScoreRecord{
			ID:       uuid.NewString(),
			MatchID:  req.MatchID,
			PlayerID: req.PlayerID,
			Score:    money.Cents(math.Round(req.Score * 100)),
			Rebuys:   req.Rebuys,
			Addons:   req.Addons,
			Status:   status,
		}
		if err := s.Store.RecordScore(rec); err != nil {
			log.Error("Failed to record score", "matchID", req.MatchID, "playerID", req.PlayerID, "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to record score"})
			return
		}

		log.Info("Recorded score", "matchID", req.MatchID, "playerID", req.PlayerID, "score", rec.Score)
		respondJSON(w, http.StatusCreated, rec)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("teamId")
		gameID := r.URL.Query().Get("gameId")
		matches, err := s.Store.GetAllMatches(teamID, gameID)
		if err != nil {
			log.Error("Failed to get matches from store", "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to get matches"})
			return
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			log.Error("Failed to get players from store", "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to get players"})
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

// PlayerHistoryHandler serves a player's paginated score history, oldest
// first.
func (s *Server) PlayerHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerId")
		if playerID == "" {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": "playerId is required"})
			return
		}
		teamID := r.URL.Query().Get("teamId")
		gameID := r.URL.Query().Get("gameId")

		offset := 0
		if v := r.URL.Query().Get("offset"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 0 {
				respondJSON(w, http.StatusBadRequest, map[string]string{"message": "offset must be a non-negative integer"})
				return
			}
			offset = parsed
		}
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				respondJSON(w, http.StatusBadRequest, map[string]string{"message": "limit must be a positive integer"})
				return
			}
			limit = parsed
		}

		history, total, err := s.Store.GetPlayerHistory(playerID, teamID, gameID, offset, limit)
		if err != nil {
			log.Error("Failed to get player history", "playerID", playerID, "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to get player history"})
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"history": history,
			"total":   total,
			"offset":  offset,
			"limit":   limit,
		})
	}
}

func (s *Server) ProcessMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessMatches(r.Context(), isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Match processing completed.")
		log.Info("Match processing finished.")
	}
}

// NotifyResultHandler is the pub/sub push endpoint for result events. The
// push wrapper carries a base64 payload which is MessagePack underneath.
func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify result message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		match := poker.Match{}
		if err := s.pubsub.ProcessMessage(rawData, &match); err != nil {
			log.Error("Failed to decode message payload", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		s.Processor.NotifyResult(r.Context(), &match, isDryRun)
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// RankingCommandHandler returns a handler for the /ranking Slack command. The
// command text optionally carries the window unit; the league itself comes
// from configuration.
func (s *Server) RankingCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verifier, err := slack.NewSecretsVerifier(r.Header, s.Cfg.Slack.SigningSecret)
		if err != nil {
			http.Error(w, "Invalid request signature", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(io.TeeReader(r.Body, &verifier))
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing command", http.StatusBadRequest)
			return
		}
		if err := verifier.Ensure(); err != nil {
			log.Warn("Rejected slash command with bad signature", "error", err)
			http.Error(w, "Invalid request signature", http.StatusUnauthorized)
			return
		}

		unitStr := strings.TrimSpace(cmd.Text)
		if unitStr == "" {
			unitStr = s.Cfg.Ranking.DefaultUnit
		}
		unit, err := ranking.ParseUnit(unitStr)
		if err != nil {
			http.Error(w, fmt.Sprintf("Unknown period %q. Try week, month, quarter or year.", unitStr), http.StatusBadRequest)
			return
		}

		entries, err := s.Ranking.Leaderboard(r.Context(), s.Cfg.Ranking.DefaultTeamID, s.Cfg.Ranking.DefaultGameID, unit)
		if err != nil {
			http.Error(w, "Failed to compute ranking", http.StatusInternalServerError)
			log.Error("Failed to compute ranking for slash command", "error", err)
			return
		}

		msg, err := s.Notifier.FormatRankingResponse(entries)
		if err != nil {
			http.Error(w, "Failed to format ranking", http.StatusInternalServerError)
			log.Error("Failed to format ranking", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
