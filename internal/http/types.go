package http

import (
	"net/http"

	"github.com/sasgl/league-api/internal/club"
	"github.com/sasgl/league-api/internal/config"
	"github.com/sasgl/league-api/internal/leaderboard"
	"github.com/sasgl/league-api/internal/league"
	"github.com/sasgl/league-api/internal/metrics"
	"github.com/sasgl/league-api/internal/notifier"
	"github.com/sasgl/league-api/internal/players"
	"github.com/sasgl/league-api/internal/stats"
)

type Server struct {
	Players        players.PlayerStore
	Clubs          club.ClubStore
	Leagues        league.LeagueStore
	Stats          stats.StatsStore
	Leaderboards   leaderboard.LeaderboardStore
	Metrics        metrics.Metrics
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Notifier       notifier.Notifier
	Cfg            config.Config
	Router         *http.ServeMux
}
