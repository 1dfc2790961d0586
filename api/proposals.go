package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/jobboard"
)

type ProposalsHandler struct {
	proposals *jobboard.Proposals
}

func NewProposalsHandler(proposals *jobboard.Proposals) *ProposalsHandler {
	return &ProposalsHandler{proposals: proposals}
}

func (h *ProposalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.New(apperr.ErrUnauthenticated, "unauthorized access"))
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateBody(r.Context(), proposalSchema, body); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.proposals.Submit(r.Context(), u.ID, json.RawMessage(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProposalsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.proposals.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
