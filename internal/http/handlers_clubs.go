package http

import (
	"net/http"

	"github.com/sasgl/league-api/internal/club"
)

type registerClubRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Description      string `json:"description"`
	LogoURL          string `json:"logo_url"`
	IsPrivate        bool   `json:"is_private"`
	CaptainContactNo string `json:"captain_contact_no"`
}

func (s *Server) RegisterClubHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)

		var req registerClubRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			respondError(w, http.StatusBadRequest, "club name is required")
			return
		}

		c, err := s.Clubs.Register(club.RegisterClubParams{
			Name:             req.Name,
			Email:            req.Email,
			Phone:            req.Phone,
			Description:      req.Description,
			LogoURL:          req.LogoURL,
			IsPrivate:        req.IsPrivate,
			CaptainContactNo: req.CaptainContactNo,
			CreatedBy:        claims.Subject,
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, c)
	}
}

func (s *Server) ListClubsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubs, err := s.Clubs.ListApproved()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, clubs)
	}
}

func (s *Server) ListAllClubsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubs, err := s.Clubs.ListAll()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, clubs)
	}
}

func (s *Server) ApproveClubHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Clubs.Approve(r.PathValue("id")); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": club.StatusApproved})
	}
}

type joinRequest struct {
	ClubID string `json:"club_id"`
}

func (s *Server) JoinRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)

		var req joinRequest
		if err := decodeJSON(r, &req); err != nil || req.ClubID == "" {
			respondError(w, http.StatusBadRequest, "club_id is required")
			return
		}

		if err := s.Clubs.RequestJoin(req.ClubID, claims.Subject); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"status": club.StatusPending})
	}
}

func (s *Server) MyClubHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		c, err := s.Clubs.MyClub(claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func (s *Server) UserRequestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		requests, err := s.Clubs.UserRequests(claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, requests)
	}
}

func (s *Server) ClubMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		members, err := s.Clubs.Members(r.PathValue("id"), claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, members)
	}
}

func (s *Server) ClubEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := s.Leagues.EventsForClub(r.PathValue("id"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, events)
	}
}

type updateClubRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"is_private"`
}

func (s *Server) UpdateClubHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)

		var req updateClubRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		clubID := r.PathValue("id")
		err := s.Clubs.Update(clubID, claims.Subject, club.ClubPatch{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			Description: req.Description,
			IsPrivate:   req.IsPrivate,
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}

		c, err := s.Clubs.Get(clubID)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func (s *Server) ApproveMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		clubID := r.PathValue("clubID")

		ok, err := s.Clubs.IsCaptain(clubID, claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if !ok {
			respondStoreError(w, club.ErrNotCaptain)
			return
		}

		m, err := s.Clubs.ApproveMember(clubID, r.PathValue("userID"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

func (s *Server) RejectRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		err := s.Clubs.RejectRequest(r.PathValue("clubID"), r.PathValue("userID"), claims.Subject)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
	}
}
