package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	Ranking       RankingConfig
	Sheets        SheetsConfig
	Currency      CurrencyConfig
	ProjectID     string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// RankingConfig tunes the leaderboard computation for a league's economy.
// DefaultTeamID and DefaultGameID scope requests that carry no explicit
// league, such as the Slack slash command.
type RankingConfig struct {
	CoinMultiplier float64
	Timezone       string
	DefaultUnit    string
	DefaultTeamID  string
	DefaultGameID  string
}

// SheetsConfig points the legacy ranking adapter at its spreadsheet ranges.
// The adapter is disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	SpreadsheetID    string
	CredentialsFile  string
	CurrentRange     string
	PreviousRange    string
	PotRange         string
	AltCurrentRange  string
	AltPreviousRange string
}

type CurrencyConfig struct {
	Symbol string
	Locale string
}
