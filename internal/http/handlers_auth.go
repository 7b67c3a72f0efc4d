package http

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/sasgl/league-api/internal/auth"
	"github.com/sasgl/league-api/internal/players"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type credentialsResponse struct {
	Token string          `json:"token"`
	User  *players.Player `json:"user"`
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "name, email and password are required")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		p, err := s.Players.Create(players.NewPlayer{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			PhoneNumber:  req.PhoneNumber,
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}

		token, err := auth.IssueToken(s.Cfg.JWTSecret, p.ID, p.Email, p.Role, s.Cfg.TokenTTL)
		if err != nil {
			log.Error("Failed to issue token", "error", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		log.Info("Registered player", "userID", p.ID, "email", p.Email)
		respondJSON(w, http.StatusCreated, credentialsResponse{Token: token, User: p})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		p, err := s.Players.GetByEmail(req.Email)
		if err != nil || !auth.CheckPassword(p.PasswordHash, req.Password) {
			// Same response either way so the endpoint cannot be used to
			// probe which emails are registered.
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := auth.IssueToken(s.Cfg.JWTSecret, p.ID, p.Email, p.Role, s.Cfg.TokenTTL)
		if err != nil {
			log.Error("Failed to issue token", "error", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		log.Info("Player logged in", "userID", p.ID)
		respondJSON(w, http.StatusOK, credentialsResponse{Token: token, User: p})
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		p, err := s.Players.GetByID(claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

type editProfileRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Password    *string `json:"password"`
}

func (s *Server) EditProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)

		var req editProfileRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		patch := players.ProfilePatch{
			Name:        req.Name,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
		}
		if req.Password != nil {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				log.Error("Failed to hash password", "error", err)
				respondError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			patch.PasswordHash = &hash
		}

		p, err := s.Players.UpdateProfile(claims.Subject, patch)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		d, err := s.Stats.DashboardStats(claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, d)
	}
}
