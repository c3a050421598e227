package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(winnerCmd)
	rootCmd.AddCommand(loserCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [name]",
	Short: "Register a new player, anonymous when no name is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		body := fmt.Sprintf(`{"playerName": %q}`, name)
		return performPostRequest("/players", body)
	},
}

var playCmd = &cobra.Command{
	Use:   "play <playerID>",
	Short: "Play a round of dice for a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/games/"+args[0], "")
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games <playerID>",
	Short: "List the games played by a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games/" + args[0])
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Get the ranking of all players by win percentage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/ranking")
	},
}

var winnerCmd = &cobra.Command{
	Use:   "winner",
	Short: "Get the player with the best win percentage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/ranking/winner")
	},
}

var loserCmd = &cobra.Command{
	Use:   "loser",
	Short: "Get the player with the worst win percentage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/ranking/loser")
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

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
