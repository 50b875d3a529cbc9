package fakeapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-ukci-client/api"
	"github.com/jrsteele09/go-ukci-client/tenants"
	"github.com/jrsteele09/go-ukci-client/users"
	"github.com/rs/zerolog/log"
)

const invalidCredentials = "Invalid email or password"

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}

		user, err := s.repos.Users.GetByEmail(strings.TrimSpace(req.Email))
		if err != nil || !users.CheckPasswordHash(req.Password, user.PasswordHash) {
			writeJSONError(w, http.StatusUnauthorized, invalidCredentials)
			return
		}
		if err := s.repos.Users.SetLastLogin(user.Email); err != nil {
			log.Err(err).Msg("Failed to record last login")
		}

		s.writeAuthPayload(w, http.StatusOK, user)
	}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !strings.Contains(email, "@") {
			writeJSONError(w, http.StatusBadRequest, "A valid email address is required")
			return
		}
		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := s.repos.Users.GetByEmail(email); err == nil {
			writeJSONError(w, http.StatusConflict, "An account with this email already exists")
			return
		}

		tenantName := strings.TrimSpace(req.Company)
		if tenantName == "" {
			tenantName = fmt.Sprintf("%s's workspace", strings.TrimSpace(req.FirstName))
		}
		tenant := &tenants.Tenant{Name: tenantName, SubscriptionTier: tenants.TierStarter}
		if err := s.repos.Tenants.Upsert(tenant); err != nil {
			log.Err(err).Msg("Failed to create tenant")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			log.Err(err).Msg("Failed to hash password")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		now := s.nowFunc().UTC()
		user := &users.User{
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Company:      strings.TrimSpace(req.Company),
			Role:         users.RoleAdmin,
			TenantID:     tenant.ID,
			DateJoined:   now,
			LastLogin:    now,
		}
		if err := s.repos.Users.Upsert(user); err != nil {
			log.Err(err).Msg("Failed to create user")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		s.writeAuthPayload(w, http.StatusCreated, user)
	}
}

func (s *Server) writeAuthPayload(w http.ResponseWriter, status int, user *users.User) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		log.Err(err).Msg("Failed to issue token")
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, status, api.AuthPayload{Token: token, User: *user})
}

func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		payload := api.CurrentUser{User: *user}
		if tenant, err := s.repos.Tenants.Get(user.TenantID); err == nil {
			payload.Tenant = tenant
		}
		writeJSON(w, http.StatusOK, payload)
	}
}
