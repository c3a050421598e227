package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/jmalvarez/dice-ranking/internal/dice"
	"github.com/jmalvarez/dice-ranking/internal/players"
	"github.com/jmalvarez/dice-ranking/internal/pubsub"
	"github.com/jmalvarez/dice-ranking/internal/ranking"
)

// rankingResponse is the wire format for the ranking endpoints.
// AverageSuccessRate is a pointer so an empty ledger serializes as null
// instead of a misleading zero.
type rankingResponse struct {
	SortPlayersWithWinPercentage []ranking.Entry `json:"sortPlayersWithWinPercentage"`
	AverageSuccessRate           *float64        `json:"averageSuccessRate"`
	Anomalies                    int             `json:"anomalies,omitempty"`
}

func newRankingResponse(snapshot *ranking.Snapshot) rankingResponse {
	resp := rankingResponse{
		SortPlayersWithWinPercentage: snapshot.Entries,
		Anomalies:                    snapshot.Anomalies,
	}
	if resp.SortPlayersWithWinPercentage == nil {
		resp.SortPlayersWithWinPercentage = []ranking.Entry{}
	}
	if snapshot.HasData {
		avg := snapshot.AverageSuccessRate
		resp.AverageSuccessRate = &avg
	}
	return resp
}

// handleError maps domain errors to HTTP status codes.
func handleError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, players.ErrPlayerNotFound):
		http.Error(w, players.ErrPlayerNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, players.ErrInvalidName):
		http.Error(w, players.ErrInvalidName.Error(), http.StatusBadRequest)
	case errors.Is(err, dice.ErrInvalidDieValue):
		http.Error(w, dice.ErrInvalidDieValue.Error(), http.StatusBadRequest)
	default:
		http.Error(w, msg, http.StatusInternalServerError)
		log.Error(msg, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		if err := s.Ledger.Clear(); err != nil {
			handleError(w, err, "Failed to clear games")
			return
		}
		if err := s.Players.Clear(); err != nil {
			handleError(w, err, "Failed to clear players")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PlayerName string `json:"playerName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		player, err := s.Players.Register(body.PlayerName)
		if err != nil {
			handleError(w, err, "Failed to register player")
			return
		}
		log.Info("Registered player", "playerID", player.ID, "name", player.Name)
		writeJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) RenamePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("playerID")
		var body struct {
			PlayerName string `json:"playerName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		player, err := s.Players.Rename(playerID, body.PlayerName)
		if err != nil {
			handleError(w, err, "Failed to rename player")
			return
		}
		log.Info("Renamed player", "playerID", player.ID, "name", player.Name)
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := s.Players.GetAll()
		if err != nil {
			handleError(w, err, "Failed to get players")
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func (s *Server) PlayRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("playerID")
		isDryRun := isDryRunFromContext(r)

		game, err := s.Processor.PlayRound(playerID, isDryRun)
		if err != nil {
			handleError(w, err, "Failed to play round")
			return
		}
		writeJSON(w, http.StatusCreated, game)
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("playerID")
		if !s.Players.IsKnownPlayer(playerID) {
			http.Error(w, players.ErrPlayerNotFound.Error(), http.StatusNotFound)
			return
		}

		games, err := s.Ledger.ListByPlayer(playerID)
		if err != nil {
			handleError(w, err, "Failed to get games")
			return
		}
		writeJSON(w, http.StatusOK, games)
	}
}

func (s *Server) DeleteGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("playerID")
		if !s.Players.IsKnownPlayer(playerID) {
			http.Error(w, players.ErrPlayerNotFound.Error(), http.StatusNotFound)
			return
		}

		deleted, err := s.Ledger.DeleteAllByPlayer(playerID)
		if err != nil {
			handleError(w, err, "Failed to delete games")
			return
		}
		log.Info("Deleted games for player", "playerID", playerID, "count", deleted)
		writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
	}
}

func (s *Server) RankingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.Ranking.ComputeSnapshot()
		if err != nil {
			handleError(w, err, "Failed to compute ranking")
			return
		}
		writeJSON(w, http.StatusOK, newRankingResponse(snapshot))
	}
}

func (s *Server) WinnerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		winner, err := s.Ranking.Winner()
		if err != nil {
			handleError(w, err, "Failed to compute winner")
			return
		}
		if winner == nil {
			http.Error(w, "No games recorded", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, winner)
	}
}

func (s *Server) LoserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loser, err := s.Ranking.Loser()
		if err != nil {
			handleError(w, err, "Failed to compute loser")
			return
		}
		if loser == nil {
			http.Error(w, "No games recorded", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, loser)
	}
}

// GamePlayedEventHandler consumes the pubsub push delivery for played games
// and forwards the event to the notifier.
func (s *Server) GamePlayedEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.FromContext(r.Context()).Debug("Received game played message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		event := pubsub.GamePlayedEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if err := s.Processor.NotifyResult(&event, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
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

// RankingCommandHandler returns a handler for the /ranking Slack command.
func (s *Server) RankingCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.Ranking.ComputeSnapshot()
		if err != nil {
			http.Error(w, "Failed to compute ranking", http.StatusInternalServerError)
			log.Error("Failed to compute ranking", "error", err)
			return
		}

		msg, err := s.Notifier.FormatRankingResponse(snapshot)
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
