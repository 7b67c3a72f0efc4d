package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/sasgl/league-api/internal/club"
	"github.com/sasgl/league-api/internal/leaderboard"
	"github.com/sasgl/league-api/internal/league"
	"github.com/sasgl/league-api/internal/players"
	"github.com/sasgl/league-api/internal/stats"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps the store sentinel errors onto HTTP status codes.
// Anything unrecognized is a 500 with the detail kept out of the response.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, players.ErrPlayerNotFound),
		errors.Is(err, club.ErrClubNotFound),
		errors.Is(err, club.ErrNoClub),
		errors.Is(err, club.ErrMemberNotFound),
		errors.Is(err, club.ErrRequestNotFound),
		errors.Is(err, league.ErrEventNotFound),
		errors.Is(err, league.ErrLeagueNotFound),
		errors.Is(err, stats.ErrEventNotFound),
		errors.Is(err, stats.ErrUserNotFound),
		errors.Is(err, stats.ErrClubNotFound),
		errors.Is(err, leaderboard.ErrClubNotFound),
		errors.Is(err, leaderboard.ErrLeagueNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, players.ErrEmailTaken),
		errors.Is(err, club.ErrAlreadyOwner),
		errors.Is(err, club.ErrDuplicateRequest),
		errors.Is(err, league.ErrAlreadyRegistered):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, club.ErrNotCaptain),
		errors.Is(err, club.ErrNotMember):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, players.ErrEmptyPatch),
		errors.Is(err, league.ErrNotUpcoming):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("Unhandled store error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
