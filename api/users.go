package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/pkg/models"
)

type UsersHandler struct {
	users *jobboard.Users
}

func NewUsersHandler(users *jobboard.Users) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in jobboard.Registration
	if err := decodeValid(r.Context(), registrationSchema, body, &in); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UsersHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.FindByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in jobboard.ProfileUpdate
	if err := decodeValid(r.Context(), profileUpdateSchema, body, &in); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type roleRequest struct {
	Role models.Role `json:"role"`
}

// SetRole changes a user's role. Admin only.
func (h *UsersHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req roleRequest
	if err := decodeValid(r.Context(), roleRequestSchema, body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.users.SetRole(r.Context(), mux.Vars(r)["id"], req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
