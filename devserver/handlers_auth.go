package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
	"github.com/jrsteele09/go-summary-client/token/jwt"
	"github.com/jrsteele09/go-summary-client/users"
	"github.com/rs/zerolog/log"
)

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func accessClaims(u *users.User) jwt.Claims {
	return jwt.Claims{
		UserID:     u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		DateJoined: u.DateJoined.Unix(),
	}
}

// TokenHandler exchanges an email and password for an access/refresh token pair
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		user, err := s.repos.Users.GetByEmail(req.Email)
		if err != nil || !user.CheckPassword(req.Password) {
			// Don't reveal if user exists or not
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		access, err := s.tokens.CreateAccessToken(accessClaims(user))
		if err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("Token: failed to create access token")
			writeError(w, http.StatusInternalServerError, apperrors.DefaultMessage)
			return
		}
		refreshToken, err := s.refreshes.Create(user.ID)
		if err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("Token: failed to create refresh token")
			writeError(w, http.StatusInternalServerError, apperrors.DefaultMessage)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Access: *access, Refresh: *refreshToken})
	}
}

// RefreshHandler mints a new access token from a refresh token
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
			writeError(w, http.StatusBadRequest, "Refresh token is required")
			return
		}

		stored, err := s.refreshes.Validate(req.Refresh)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}
		user, err := s.repos.Users.GetByID(stored.UserID)
		if err != nil {
			_ = s.refreshes.Delete(stored.Token)
			writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}

		access, err := s.tokens.CreateAccessToken(accessClaims(user))
		if err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("Refresh: failed to create access token")
			writeError(w, http.StatusInternalServerError, apperrors.DefaultMessage)
			return
		}
		writeJSON(w, http.StatusOK, tokenResponse{Access: *access})
	}
}

// RegisterHandler creates a user account. The full name is split into first and last name.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}
		firstName, lastName := users.SplitFullName(req.FullName)
		if firstName == "" {
			writeError(w, http.StatusBadRequest, "Full name is required")
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			log.Err(err).Msg("Register: failed to hash password")
			writeError(w, http.StatusInternalServerError, apperrors.DefaultMessage)
			return
		}

		err = s.repos.Users.Create(&users.User{
			Email:        strings.TrimSpace(req.Email),
			PasswordHash: hash,
			FirstName:    firstName,
			LastName:     lastName,
			DateJoined:   NowTimeFunc().UTC(),
		})
		if errors.Is(err, users.ErrUserExists) {
			writeError(w, http.StatusConflict, "User Already Exists")
			return
		}
		if err != nil {
			log.Err(err).Msg("Register: failed to create user")
			writeError(w, http.StatusInternalServerError, apperrors.DefaultMessage)
			return
		}

		writeMessage(w, http.StatusCreated, "User created successfully")
	}
}
