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

type Server struct {
	Players        players.PlayerStore
	Ledger         ledger.GameLedger
	Ranking        *ranking.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
