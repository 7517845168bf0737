package league

import (
	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/ranking"
)

// LeagueStore defines the interface for interacting with the league's data.
// It embeds the ranking engine's read port on top of the CRUD surface used by
// the HTTP handlers and the processor.
type LeagueStore interface {
	ranking.ScoreStore

	UpsertTeam(team poker.Team) error
	UpsertGame(game poker.Game) error
	UpsertPlayer(player poker.Player) error
	UpsertPlayers(players []poker.Player) error
	GetAllPlayers() ([]poker.Player, error)
	IsKnownPlayer(playerID string) bool

	CreateMatch(match *poker.Match) error
	GetAllMatches(teamID, gameID string) ([]*poker.Match, error)
	GetMatchesForProcessing() ([]*poker.Match, error)
	UpdateProcessingStatus(matchID string, status poker.ProcessingStatus) error

	RecordScore(rec *poker.ScoreRecord) error
	GetPlayerHistory(playerID, teamID, gameID string, offset, limit int) ([]poker.ScoreRecord, int, error)

	Clear()
	ClearMatch(matchID string)
}
