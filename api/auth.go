package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/pkg/repository"
)

type AuthHandler struct {
	issuer *auth.Issuer
	gate   *auth.Gate
	users  repository.UserRepo
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(issuer *auth.Issuer, gate *auth.Gate, users repository.UserRepo) *AuthHandler {
	return &AuthHandler{issuer: issuer, gate: gate, users: users}
}

type tokenRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type adminResponse struct {
	Admin bool `json:"admin"`
}

// IssueToken signs a token for the submitted identity. Users that registered
// with a password must present it.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req tokenRequest
	if err := decodeValid(r.Context(), tokenRequestSchema, body, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	u, err := h.users.GetUserByEmail(r.Context(), req.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		writeError(w, r, apperr.Internal("load user", err))
		return
	case u.PasswordHash != "":
		if req.Password == "" {
			writeError(w, r, apperr.New(apperr.ErrUnauthenticated, "credentials not found"))
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
			writeError(w, r, err)
			return
		}
	}

	token, err := h.issuer.Issue(req.Email, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// CheckAdmin reports whether the caller is an admin. Callers may only ask
// about their own email.
func (h *AuthHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.New(apperr.ErrUnauthenticated, "unauthorized access"))
		return
	}
	email := mux.Vars(r)["email"]
	if !strings.EqualFold(email, id.Email) {
		writeError(w, r, apperr.New(apperr.ErrForbidden, "forbidden access"))
		return
	}

	admin, err := h.gate.IsAdmin(r.Context(), id.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adminResponse{Admin: admin})
}
