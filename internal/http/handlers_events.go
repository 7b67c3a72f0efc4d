package http

import (
	"net/http"
	"time"

	"github.com/sasgl/league-api/internal/league"
)

func (s *Server) ListEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := s.Leagues.ListEvents()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, events)
	}
}

type eventRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Handicap    bool    `json:"handicap"`
	Location    string  `json:"location"`
	ClubID      string  `json:"club_id"`
}

func (r eventRequest) validate() string {
	if r.Name == "" || r.Type == "" || r.StartDate == "" {
		return "name, type and start_date are required"
	}
	switch r.Type {
	case league.TypeLeague, league.TypeTournament, league.TypeCasual:
	default:
		return "type must be league, tournament or casual"
	}
	if _, err := time.Parse(league.DateLayout, r.StartDate); err != nil {
		return "start_date must be YYYY-MM-DD"
	}
	if r.EndDate != nil {
		if _, err := time.Parse(league.DateLayout, *r.EndDate); err != nil {
			return "end_date must be YYYY-MM-DD"
		}
		if *r.EndDate < r.StartDate {
			return "end_date must not precede start_date"
		}
	}
	return ""
}

func (s *Server) CreateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)

		var req eventRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}

		e, err := s.Leagues.CreateEvent(league.CreateEventParams{
			Name:        req.Name,
			Type:        req.Type,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Handicap:    req.Handicap,
			Location:    req.Location,
			ClubID:      req.ClubID,
			CreatedBy:   claims.Subject,
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, e)
	}
}

func (s *Server) UpdateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}

		e, err := s.Leagues.UpdateEvent(r.PathValue("id"), league.UpdateEventParams{
			Name:        req.Name,
			Type:        req.Type,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Handicap:    req.Handicap,
			Location:    req.Location,
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func (s *Server) DeleteEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Leagues.DeleteEvent(r.PathValue("id")); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

func (s *Server) EventParticipantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participants, err := s.Leagues.Participants(r.PathValue("id"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, participants)
	}
}

func (s *Server) AdminDataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.Stats.AdminSnapshot()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

func (s *Server) AdminMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, counters)
	}
}
