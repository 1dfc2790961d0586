package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/jobboard"
)

type JobsHandler struct {
	feed     *jobboard.Feed
	postings *jobboard.Postings
	clock    jobboard.Clock
}

func NewJobsHandler(feed *jobboard.Feed, postings *jobboard.Postings, clock jobboard.Clock) *JobsHandler {
	return &JobsHandler{feed: feed, postings: postings, clock: clock}
}

// NonExpired lists open jobs the user has not applied to.
func (h *JobsHandler) NonExpired(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.feed.Available(r.Context(), mux.Vars(r)["userId"], h.clock.Today())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// Applied lists open jobs the user has applied to, earliest deadline first.
func (h *JobsHandler) Applied(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.feed.Applied(r.Context(), mux.Vars(r)["userId"], h.clock.Today())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	var in jobboard.NewJob
	if err := decodeValid(r.Context(), newJobSchema, body, &in); err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.postings.Post(r.Context(), u.ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}
