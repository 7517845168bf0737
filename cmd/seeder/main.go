package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/diegohideky/poker-shark/internal/database"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "poker-shark.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "", cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	log.Info("Successfully connected to the database.", "db", cfg["DB_NAME"])

	teamID := "seed-team"
	gameID := "seed-game"
	if _, err := db.Exec("INSERT OR IGNORE INTO teams (id, name, page_name) VALUES (?, ?, ?)", teamID, "Seeded League", "seeded-league"); err != nil {
		log.Fatalf("Failed to insert team: %s", err)
	}
	if _, err := db.Exec("INSERT OR IGNORE INTO games (id, name) VALUES (?, ?)", gameID, "Texas Hold'em"); err != nil {
		log.Fatalf("Failed to insert game: %s", err)
	}

	players := []struct {
		ID   string
		Name string
	}{
		{"player-1", "Seeder Player A"},
		{"player-2", "Seeder Player B"},
		{"player-3", "Seeder Player C"},
		{"player-4", "Seeder Player D"},
		{"player-5", "Seeder Player E"},
		{"player-6", "Seeder Player F"},
	}
	for _, p := range players {
		if _, err := db.Exec("INSERT OR IGNORE INTO players (id, name) VALUES (?, ?)", p.ID, p.Name); err != nil {
			log.Fatalf("Failed to insert player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured seed players exist.")

	const numMatches = 40

	log.Info("Preparing to insert seed matches...", "total", numMatches)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	for i := 0; i < numMatches; i++ {
		matchID := uuid.NewString()
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)

		_, err := tx.Exec(`
			INSERT INTO matches (id, name, team_id, game_id, datetime, buy_in, add_on, processing_status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			matchID,
			fmt.Sprintf("Poker Night #%d", i+1),
			teamID,
			gameID,
			matchTime.Unix(),
			5000,
			2500,
			"COMPLETED",
		)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert match: %s", err)
		}

		// Scores per night are zero-sum: the pot is redistributed, never
		// created. The last player absorbs the remainder.
		total := int64(0)
		valueStrings := make([]string, 0, len(players))
		valueArgs := make([]interface{}, 0, len(players)*6)
		for j, p := range players {
			var score int64
			if j == len(players)-1 {
				score = -total
			} else {
				score = int64(rand.Intn(20000) - 10000)
				total += score
			}
			valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?)")
			valueArgs = append(valueArgs, uuid.NewString(), matchID, p.ID, score, rand.Intn(3), "finished")
		}

		stmt := fmt.Sprintf(`
			INSERT INTO match_players (id, match_id, player_id, score, rebuys, status)
			VALUES %s;`, strings.Join(valueStrings, ","))
		if _, err := tx.Exec(stmt, valueArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert match players: %s", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all seed matches.", "duration", duration)
}
