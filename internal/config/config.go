package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	coinMultiplier, err := strconv.ParseFloat(getEnvOr("COIN_MULTIPLIER", "105"), 64)
	if err != nil {
		log.Fatalf("Error: COIN_MULTIPLIER must be numeric: %s", err)
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN"),
			ChannelID:     getEnv("SLACK_CHANNEL_ID"),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Ranking: RankingConfig{
			CoinMultiplier: coinMultiplier,
			Timezone:       getEnvOr("RANKING_TIMEZONE", "UTC"),
			DefaultUnit:    getEnvOr("RANKING_DEFAULT_UNIT", "month"),
			DefaultTeamID:  getEnvOr("DEFAULT_TEAM_ID", ""),
			DefaultGameID:  getEnvOr("DEFAULT_GAME_ID", ""),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:    getEnvOr("SPREADSHEET_ID", ""),
			CredentialsFile:  getEnvOr("GOOGLE_CREDENTIALS_FILE", ""),
			CurrentRange:     getEnvOr("CURRENT_RANKING_RANGE", ""),
			PreviousRange:    getEnvOr("PREVIOUS_RANKING_RANGE", ""),
			PotRange:         getEnvOr("CAIXA_RANGE", ""),
			AltCurrentRange:  getEnvOr("CURRENT_RANKING_RANGE_BRUNO", ""),
			AltPreviousRange: getEnvOr("PREVIOUS_RANKING_RANGE_BRUNO", ""),
		},
		Currency: CurrencyConfig{
			Symbol: getEnvOr("CURRENCY_SYMBOL", "R$"),
			Locale: getEnvOr("CURRENCY_LOCALE", "pt-BR"),
		},
		ProjectID: getEnv("GCP_PROJECT"),
	}
	return cfg
}
