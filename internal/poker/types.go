package poker

import (
	"time"

	"github.com/diegohideky/poker-shark/internal/money"
)

// ProcessingStatus tracks how far a match has moved through the
// post-game pipeline (notification, completion).
type ProcessingStatus string

const (
	StatusNew            ProcessingStatus = "NEW"
	StatusResultNotified ProcessingStatus = "RESULT_NOTIFIED"
	StatusCompleted      ProcessingStatus = "COMPLETED"
)

// PlayerStatus is the state of a single player within a match.
type PlayerStatus string

const (
	PlayerEnrolled PlayerStatus = "enrolled"
	PlayerBusted   PlayerStatus = "busted"
	PlayerFinished PlayerStatus = "finished"
)

// Team is a poker league (a group of players who meet regularly).
type Team struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PageName string `json:"pageName,omitempty"`
}

// Game is a game variant played by a team, e.g. "Texas Hold'em".
type Game struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Player is a league member.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match is a single poker night for a team and game.
type Match struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	TeamID           string           `json:"teamId"`
	GameID           string           `json:"gameId"`
	Datetime         time.Time        `json:"datetime"`
	BuyIn            money.Cents      `json:"buyIn,omitempty"`
	AddOn            money.Cents      `json:"addOn,omitempty"`
	ProcessingStatus ProcessingStatus `json:"processingStatus,omitempty"`
}

// ScoreRecord is one player's result in one match. Score is in cents and
// signed; a losing night is negative. A player has at most one record per
// match.
type ScoreRecord struct {
	ID            string       `json:"id"`
	MatchID       string       `json:"matchId"`
	PlayerID      string       `json:"playerId"`
	PlayerName    string       `json:"playerName"`
	TeamID        string       `json:"teamId"`
	GameID        string       `json:"gameId"`
	Score         money.Cents  `json:"score"`
	Rebuys        int          `json:"rebuys"`
	Addons        int          `json:"addons"`
	Status        PlayerStatus `json:"status"`
	MatchDatetime time.Time    `json:"matchDatetime"`
}
