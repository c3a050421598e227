package http

import (
	"net/http"

	"github.com/jmalvarez/dice-ranking/internal/config"
	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/metrics"
	"github.com/jmalvarez/dice-ranking/internal/notifier"
	"github.com/jmalvarez/dice-ranking/internal/players"
	"github.com/jmalvarez/dice-ranking/internal/processor"
	"github.com/jmalvarez/dice-ranking/internal/pubsub"
	"github.com/jmalvarez/dice-ranking/internal/ranking"
)

func NewServer(playerStore players.PlayerStore, gameLedger ledger.GameLedger, rankingSvc *ranking.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Players:        playerStore,
		Ledger:         gameLedger,
		Ranking:        rankingSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.RegisterPlayerHandler(), paramsMiddleware))
	s.Router.Handle("PUT /players/{playerID}", Chain(s.RenamePlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /games/{playerID}", Chain(s.PlayRoundHandler(), paramsMiddleware))
	s.Router.Handle("GET /games/{playerID}", Chain(s.ListGamesHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /games/{playerID}", Chain(s.DeleteGamesHandler(), paramsMiddleware))
	s.Router.Handle("GET /ranking", Chain(s.RankingHandler(), paramsMiddleware))
	s.Router.Handle("GET /ranking/winner", Chain(s.WinnerHandler(), paramsMiddleware))
	s.Router.Handle("GET /ranking/loser", Chain(s.LoserHandler(), paramsMiddleware))
	s.Router.Handle("POST /events/game-played", Chain(s.GamePlayedEventHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/ranking", Chain(s.RankingCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
