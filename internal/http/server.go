package http

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/sasgl/league-api/internal/club"
	"github.com/sasgl/league-api/internal/config"
	"github.com/sasgl/league-api/internal/leaderboard"
	"github.com/sasgl/league-api/internal/league"
	"github.com/sasgl/league-api/internal/metrics"
	"github.com/sasgl/league-api/internal/notifier"
	"github.com/sasgl/league-api/internal/players"
	"github.com/sasgl/league-api/internal/stats"
)

func NewServer(
	playerStore players.PlayerStore,
	clubStore club.ClubStore,
	leagueStore league.LeagueStore,
	statsStore stats.StatsStore,
	leaderboardStore leaderboard.LeaderboardStore,
	metricsSvc metrics.Metrics,
	counters metrics.MetricsStore,
	metricsHandler http.Handler,
	notifier notifier.Notifier,
	cfg config.Config,
) *Server {
	server := &Server{
		Players:        playerStore,
		Clubs:          clubStore,
		Leagues:        leagueStore,
		Stats:          statsStore,
		Leaderboards:   leaderboardStore,
		Metrics:        metricsSvc,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Notifier:       notifier,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Three tiers: public, authenticated, and admin.
	auth := s.authMiddleware
	admin := s.requireAdmin

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/auth/register", Chain(s.RegisterHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/auth/login", Chain(s.LoginHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/users/me", Chain(s.MeHandler(), paramsMiddleware, auth))
	s.Router.Handle("PUT /api/users/edit", Chain(s.EditProfileHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/dashboard/stats", Chain(s.DashboardHandler(), paramsMiddleware, auth))

	s.Router.Handle("POST /api/clubs/register", Chain(s.RegisterClubHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/clubs", Chain(s.ListClubsHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/clubs/all", Chain(s.ListAllClubsHandler(), paramsMiddleware, auth, admin))
	s.Router.Handle("POST /api/clubs/request", Chain(s.JoinRequestHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/clubs/myclub", Chain(s.MyClubHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/clubs/user-requests", Chain(s.UserRequestsHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/clubs/{id}/members", Chain(s.ClubMembersHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/clubs/{id}/events", Chain(s.ClubEventsHandler(), paramsMiddleware, auth))
	s.Router.Handle("PATCH /api/clubs/{id}", Chain(s.UpdateClubHandler(), paramsMiddleware, auth))
	s.Router.Handle("PATCH /api/clubs/{clubID}/members/{userID}/approve",
		Chain(s.ApproveMemberHandler(), paramsMiddleware, auth))
	s.Router.Handle("DELETE /api/clubs/{clubID}/members/{userID}/reject",
		Chain(s.RejectRequestHandler(), paramsMiddleware, auth))
	s.Router.Handle("PATCH /api/clubs/{id}/approve", Chain(s.ApproveClubHandler(), paramsMiddleware, auth, admin))

	s.Router.Handle("GET /api/admin/data", Chain(s.AdminDataHandler(), paramsMiddleware, auth, admin))
	s.Router.Handle("GET /api/admin/metrics", Chain(s.AdminMetricsHandler(), paramsMiddleware, auth, admin))
	s.Router.Handle("GET /api/admin/events", Chain(s.ListEventsHandler(), paramsMiddleware, auth, admin))
	s.Router.Handle("POST /api/admin/events", Chain(s.CreateEventHandler(), paramsMiddleware, auth, admin))
	s.Router.Handle("PUT /api/admin/events/{id}", Chain(s.UpdateEventHandler(), paramsMiddleware, auth, admin))
	s.Router.Handle("DELETE /api/admin/events/{id}", Chain(s.DeleteEventHandler(), paramsMiddleware, auth, admin))
	s.Router.Handle("GET /api/admin/events/{id}/participants",
		Chain(s.EventParticipantsHandler(), paramsMiddleware, auth, admin))
	s.Router.Handle("POST /api/admin/record-stats", Chain(s.RecordStatsHandler(), paramsMiddleware, auth, admin))

	s.Router.Handle("POST /api/stats/submit", Chain(s.SubmitStatsHandler(), paramsMiddleware, auth))

	s.Router.Handle("GET /api/leagues/active", Chain(s.ActiveLeaguesHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/leagues/{id}", Chain(s.LeagueDetailHandler(), paramsMiddleware, auth))
	s.Router.Handle("POST /api/leagues/{id}/register", Chain(s.RegisterForLeagueHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/leagues/{id}/authorized", Chain(s.LeagueAuthorizedHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /api/league/{clubID}", Chain(s.ClubStandingsHandler(), paramsMiddleware, auth))
}

// Handler returns the router wrapped with the CORS policy from config.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.Cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(s.Router)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
