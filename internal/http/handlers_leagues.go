package http

import (
	"net/http"
)

func (s *Server) ActiveLeaguesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		leagues, err := s.Leagues.ActiveLeaguesFor(claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, leagues)
	}
}

func (s *Server) LeagueDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := s.Leaderboards.LeagueDetail(r.PathValue("id"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		s.Metrics.IncLeaderboardBuilds()
		respondJSON(w, http.StatusOK, detail)
	}
}

func (s *Server) RegisterForLeagueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		if err := s.Leagues.RegisterForLeague(r.PathValue("id"), claims.Subject); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
	}
}

func (s *Server) LeagueAuthorizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		ok, err := s.Leagues.IsClubMember(r.PathValue("id"), claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"authorized": ok})
	}
}

func (s *Server) ClubStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Leaderboards.ClubStandings(r.PathValue("clubID"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		s.Metrics.IncLeaderboardBuilds()
		respondJSON(w, http.StatusOK, standings)
	}
}
