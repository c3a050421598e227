package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jmalvarez/dice-ranking/internal/config"
	"github.com/jmalvarez/dice-ranking/internal/database"
	"github.com/jmalvarez/dice-ranking/internal/dice"
	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/metrics"
	"github.com/jmalvarez/dice-ranking/internal/notifier"
	"github.com/jmalvarez/dice-ranking/internal/players"
	"github.com/jmalvarez/dice-ranking/internal/processor"
	"github.com/jmalvarez/dice-ranking/internal/pubsub"
	"github.com/jmalvarez/dice-ranking/internal/ranking"
)

// setupTestServer initializes a new server with a test database and mock clients.
// The provided rolls feed a deterministic roller.
func setupTestServer(t *testing.T, rolls ...[2]int) (*Server, *notifier.MockNotifier, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	playerStore := players.New(db)
	gameLedger := ledger.New(db)
	cfg := config.Config{}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	mockNotifier := notifier.NewMock()
	mockPubsub := pubsub.NewMock()
	roller := dice.NewMock(rolls...)
	rankingSvc := ranking.New(gameLedger, playerStore, metricsSvc)
	proc := processor.New(playerStore, gameLedger, roller, mockNotifier, metricsSvc, mockPubsub)
	server := NewServer(playerStore, gameLedger, rankingSvc, metricsSvc, metricsHandler, cfg, mockNotifier, proc, mockPubsub)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, mockNotifier, teardown
}

func registerPlayer(t *testing.T, server *Server, name string) *players.Player {
	t.Helper()

	body := fmt.Sprintf(`{"playerName": %q}`, name)
	req := httptest.NewRequest("POST", "/players", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var player players.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))
	return &player
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestRegisterPlayerHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	t.Run("registers a named player", func(t *testing.T) {
		player := registerPlayer(t, server, "Ada")
		assert.NotEmpty(t, player.ID)
		assert.Equal(t, "Ada", player.Name)
		assert.False(t, player.Anonymous)
	})

	t.Run("registers an anonymous player on blank name", func(t *testing.T) {
		player := registerPlayer(t, server, "")
		assert.Equal(t, players.AnonymousName, player.Name)
		assert.True(t, player.Anonymous)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/players", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRenamePlayerHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	player := registerPlayer(t, server, "")

	t.Run("renames an existing player", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/players/"+player.ID, strings.NewReader(`{"playerName": "Grace Hopper"}`))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var renamed players.Player
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &renamed))
		assert.Equal(t, "Grace Hopper", renamed.Name)
		assert.False(t, renamed.Anonymous)
	})

	t.Run("rejects an invalid name", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/players/"+player.ID, strings.NewReader(`{"playerName": "h4cker"}`))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns 404 for an unknown player", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/players/nope", strings.NewReader(`{"playerName": "Grace"}`))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListPlayersHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	registerPlayer(t, server, "Ada")
	registerPlayer(t, server, "Grace")

	req := httptest.NewRequest("GET", "/players", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var all []players.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	require.Len(t, all, 2)
	names := []string{all[0].Name, all[1].Name}
	assert.ElementsMatch(t, []string{"Ada", "Grace"}, names)
}

func TestPlayRoundHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, [2]int{5, 5}, [2]int{2, 6})
	defer teardown()

	player := registerPlayer(t, server, "Ada")

	t.Run("plays a winning round", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/games/"+player.ID, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var game ledger.Game
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, player.ID, game.PlayerID)
		assert.Equal(t, 5, game.Dice1)
		assert.Equal(t, 5, game.Dice2)
		assert.True(t, game.Result)
	})

	t.Run("plays a losing round", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/games/"+player.ID, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var game ledger.Game
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
		assert.False(t, game.Result)
	})

	t.Run("returns 404 for an unknown player", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/games/nope", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListAndDeleteGamesHandlers(t *testing.T) {
	server, _, teardown := setupTestServer(t, [2]int{1, 1}, [2]int{3, 4})
	defer teardown()

	player := registerPlayer(t, server, "Ada")
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/games/"+player.ID, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	t.Run("lists games for a player", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/games/"+player.ID, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var games []ledger.Game
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
		require.Len(t, games, 2)
		assert.True(t, games[0].Result)
		assert.False(t, games[1].Result)
	})

	t.Run("returns 404 when listing games for an unknown player", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/games/nope", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("deletes all games for a player", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/games/"+player.ID, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]int64
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp["deleted"])
	})

	t.Run("deleting again removes nothing", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/games/"+player.ID, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]int64
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(0), resp["deleted"])
	})
}

func TestRankingHandler(t *testing.T) {
	t.Run("ranks players by win percentage", func(t *testing.T) {
		server, _, teardown := setupTestServer(t,
			[2]int{3, 3}, [2]int{2, 5}, [2]int{6, 6}, [2]int{1, 4}, // 50%
			[2]int{4, 4}, // 100%
		)
		defer teardown()

		playerA := registerPlayer(t, server, "Ada")
		playerB := registerPlayer(t, server, "Grace")

		for i := 0; i < 4; i++ {
			req := httptest.NewRequest("POST", "/games/"+playerA.ID, nil)
			rr := httptest.NewRecorder()
			server.ServeHTTP(rr, req)
			require.Equal(t, http.StatusCreated, rr.Code)
		}
		req := httptest.NewRequest("POST", "/games/"+playerB.ID, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		require.Equal(t, http.StatusCreated, rr.Code)

		req = httptest.NewRequest("GET", "/ranking", nil)
		rr = httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			SortPlayersWithWinPercentage []ranking.Entry `json:"sortPlayersWithWinPercentage"`
			AverageSuccessRate           *float64        `json:"averageSuccessRate"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.SortPlayersWithWinPercentage, 2)
		assert.Equal(t, playerB.ID, resp.SortPlayersWithWinPercentage[0].PlayerID)
		assert.Equal(t, 100.0, resp.SortPlayersWithWinPercentage[0].WinPercentage)
		assert.Equal(t, playerA.ID, resp.SortPlayersWithWinPercentage[1].PlayerID)
		assert.Equal(t, 50.0, resp.SortPlayersWithWinPercentage[1].WinPercentage)
		require.NotNil(t, resp.AverageSuccessRate)
		assert.Equal(t, 75.0, *resp.AverageSuccessRate)
	})

	t.Run("serializes a null average when no games exist", func(t *testing.T) {
		server, _, teardown := setupTestServer(t)
		defer teardown()

		req := httptest.NewRequest("GET", "/ranking", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"sortPlayersWithWinPercentage":[]`)
		assert.Contains(t, rr.Body.String(), `"averageSuccessRate":null`)
	})
}

func TestWinnerAndLoserHandlers(t *testing.T) {
	t.Run("returns winner and loser", func(t *testing.T) {
		server, _, teardown := setupTestServer(t, [2]int{2, 2}, [2]int{3, 5})
		defer teardown()

		playerA := registerPlayer(t, server, "Ada")
		playerB := registerPlayer(t, server, "Grace")
		for _, id := range []string{playerA.ID, playerB.ID} {
			req := httptest.NewRequest("POST", "/games/"+id, nil)
			rr := httptest.NewRecorder()
			server.ServeHTTP(rr, req)
			require.Equal(t, http.StatusCreated, rr.Code)
		}

		req := httptest.NewRequest("GET", "/ranking/winner", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var winner ranking.Entry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &winner))
		assert.Equal(t, playerA.ID, winner.PlayerID)

		req = httptest.NewRequest("GET", "/ranking/loser", nil)
		rr = httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var loser ranking.Entry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loser))
		assert.Equal(t, playerB.ID, loser.PlayerID)
	})

	t.Run("returns 404 when no games exist", func(t *testing.T) {
		server, _, teardown := setupTestServer(t)
		defer teardown()

		for _, path := range []string{"/ranking/winner", "/ranking/loser"} {
			req := httptest.NewRequest("GET", path, nil)
			rr := httptest.NewRecorder()
			server.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNotFound, rr.Code, path)
		}
	})
}

func TestClearStoreHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, [2]int{6, 6})
	defer teardown()

	player := registerPlayer(t, server, "Ada")
	req := httptest.NewRequest("POST", "/games/"+player.ID, nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest("POST", "/clear", nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Store cleared!", rr.Body.String())

	req = httptest.NewRequest("GET", "/players", nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var all []players.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Empty(t, all)
}

func TestGamePlayedEventHandler(t *testing.T) {
	server, mockNotifier, teardown := setupTestServer(t)
	defer teardown()

	event := pubsub.GamePlayedEvent{
		Game:       ledger.Game{ID: "g1", PlayerID: "p1", Dice1: 2, Dice2: 2, Result: true},
		PlayerName: "Ada",
	}
	payload, err := msgpack.Marshal(event)
	require.NoError(t, err)

	wrapper := map[string]any{
		"subscription": "projects/test/subscriptions/game-played",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString(payload),
		},
	}
	body, err := json.Marshal(wrapper)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/events/game-played", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendResultNotificationCalls, 1)
	call := mockNotifier.SendResultNotificationCalls[0]
	assert.Equal(t, "g1", call.Game.ID)
	assert.Equal(t, "Ada", call.PlayerName)

	t.Run("rejects invalid wrapper JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/events/game-played", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects invalid base64 payload", func(t *testing.T) {
		body := `{"message": {"data": "!!not-base64!!"}}`
		req := httptest.NewRequest("POST", "/events/game-played", strings.NewReader(body))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRankingCommandHandler(t *testing.T) {
	server, mockNotifier, teardown := setupTestServer(t)
	defer teardown()

	mockNotifier.FormatRankingResponseFunc = func(snapshot *ranking.Snapshot) (any, error) {
		return slackMessageFixture(), nil
	}

	req := httptest.NewRequest("POST", "/slack/command/ranking", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func slackMessageFixture() slack.Message {
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "ranking", false, false), nil, nil),
	)
}
