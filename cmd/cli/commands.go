package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	teamID   string
	gameID   string
	unit     string
	source   string
	playerID string
)

func init() {
	rankingCmd.Flags().StringVar(&teamID, "team", "", "The team (league) id")
	rankingCmd.Flags().StringVar(&gameID, "game", "", "The game variant id")
	rankingCmd.Flags().StringVar(&unit, "unit", "", "The calendar window: week, month, quarter or year")
	legacyRankingCmd.Flags().StringVar(&source, "source", "", "The legacy spreadsheet source")
	matchesCmd.Flags().StringVar(&teamID, "team", "", "The team (league) id")
	matchesCmd.Flags().StringVar(&gameID, "game", "", "The game variant id")
	historyCmd.Flags().StringVar(&playerID, "player", "", "The player id")
	historyCmd.Flags().StringVar(&teamID, "team", "", "The team (league) id")
	historyCmd.Flags().StringVar(&gameID, "game", "", "The game variant id")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(legacyRankingCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show the compared leaderboard for a team and game",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("teamId", teamID)
		q.Set("gameId", gameID)
		if unit != "" {
			q.Set("unit", unit)
		}
		return performGetRequest("/ranking?" + q.Encode())
	},
}

var legacyRankingCmd = &cobra.Command{
	Use:   "legacy-ranking",
	Short: "Show the spreadsheet-backed leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if source != "" {
			q.Set("source", source)
		}
		return performGetRequest("/ranking/legacy?" + q.Encode())
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the matches in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if teamID != "" {
			q.Set("teamId", teamID)
		}
		if gameID != "" {
			q.Set("gameId", gameID)
		}
		return performGetRequest("/matches?" + q.Encode())
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a player's score history",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("playerId", playerID)
		if teamID != "" {
			q.Set("teamId", teamID)
		}
		if gameID != "" {
			q.Set("gameId", gameID)
		}
		return performGetRequest("/history?" + q.Encode())
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Advance matches through the processing pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/process")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
