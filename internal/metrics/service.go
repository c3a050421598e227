package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RollsPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dice_rolls_played_total",
			Help: "The total number of rounds played.",
		}),
		RollsWon: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dice_rolls_won_total",
			Help: "The total number of rounds resolved as a win.",
		}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dice_ranking_snapshot_duration_seconds",
			Help:    "The duration of individual ranking snapshot computations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		OrphanGames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dice_orphan_games_total",
			Help: "The total number of ledger records whose player was missing from the directory.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dice_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dice_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dice_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RollsPlayed,
		s.RollsWon,
		s.SnapshotDuration,
		s.OrphanGames,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRollsPlayed() {
	s.RollsPlayed.Inc()
}

func (s *Service) IncRollsWon() {
	s.RollsWon.Inc()
}

func (s *Service) ObserveSnapshotDuration(duration float64) {
	s.SnapshotDuration.Observe(duration)
}

func (s *Service) AddOrphanGames(count float64) {
	s.OrphanGames.Add(count)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
