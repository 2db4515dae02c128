package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ayush-assistant/herbcatalog/internal/middleware"
)

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must carry a valid email and password"))
		return
	}
	if req.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("password is required"))
		return
	}

	sess, err := s.auth.SignIn(r.Context(), string(req.Email), req.Password)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	s.logger.InfoContext(r.Context(), "admin signed in", "email", sess.Email)
	writeJSON(w, http.StatusOK, LoginResponse{Token: sess.Token, Email: sess.Email, ExpiresAt: sess.ExpiresAt})
}

// Logout handles POST /auth/logout by revoking the caller's session.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.SignOut(middleware.BearerToken(r)); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	email, _ := middleware.AdminEmail(r.Context())
	s.logger.InfoContext(r.Context(), "admin signed out", "email", email)
	w.WriteHeader(http.StatusNoContent)
}
