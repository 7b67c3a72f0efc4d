package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sasgl/league-api/internal/club"
	"github.com/sasgl/league-api/internal/stats"
)

// RecordStatsHandler records a result on behalf of any player. Admin only.
func (s *Server) RecordStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)

		var sub stats.Submission
		if err := decodeJSON(r, &sub); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if sub.EventID == "" || sub.UserID == "" {
			respondError(w, http.StatusBadRequest, "event_id and user_id are required")
			return
		}
		sub.SubmittedBy = claims.Subject

		s.recordAndRespond(w, r, sub)
	}
}

// SubmitStatsHandler records a result for a player in the caller's club.
// Only a captain of the club owning the event may submit.
func (s *Server) SubmitStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)

		var sub stats.Submission
		if err := decodeJSON(r, &sub); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if sub.EventID == "" || sub.UserID == "" {
			respondError(w, http.StatusBadRequest, "event_id and user_id are required")
			return
		}

		e, err := s.Leagues.GetEvent(sub.EventID)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if e.ClubID == "" {
			respondError(w, http.StatusForbidden, "event is not owned by a club")
			return
		}
		ok, err := s.Clubs.IsCaptain(e.ClubID, claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if !ok {
			respondStoreError(w, club.ErrNotCaptain)
			return
		}
		sub.SubmittedBy = claims.Subject

		s.recordAndRespond(w, r, sub)
	}
}

func (s *Server) recordAndRespond(w http.ResponseWriter, r *http.Request, sub stats.Submission) {
	start := time.Now()
	recorded, err := s.Stats.RecordResult(sub)
	s.Metrics.ObserveRecordDuration(time.Since(start).Seconds())
	if err != nil {
		s.Metrics.IncStatsFailed()
		s.Counters.Increment("stats_failed")
		respondStoreError(w, err)
		return
	}
	s.Metrics.IncStatsRecorded()
	s.Counters.Increment("stats_recorded")

	s.notifyResult(r, sub, recorded)
	respondJSON(w, http.StatusOK, recorded)
}

// notifyResult posts the recorded round to Slack. Failures are logged, never
// surfaced: the submission already committed.
func (s *Server) notifyResult(r *http.Request, sub stats.Submission, recorded *stats.RecordedStats) {
	if s.Notifier == nil {
		return
	}

	playerName := sub.UserID
	if p, err := s.Players.GetByID(sub.UserID); err == nil {
		playerName = p.Name
	}
	eventName := sub.EventID
	if e, err := s.Leagues.GetEvent(sub.EventID); err == nil {
		eventName = e.Name
	}

	if err := s.Notifier.SendResultNotification(playerName, eventName, recorded, isDryRunFromContext(r)); err != nil {
		log.Error("Failed to send result notification", "error", err,
			"eventID", sub.EventID, "userID", sub.UserID)
	}
}
