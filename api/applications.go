package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobboard/internal/jobboard"
)

type ApplicationsHandler struct {
	registry   *jobboard.Registry
	aggregator *jobboard.Aggregator
}

func NewApplicationsHandler(registry *jobboard.Registry, aggregator *jobboard.Aggregator) *ApplicationsHandler {
	return &ApplicationsHandler{registry: registry, aggregator: aggregator}
}

// Apply records that userId applied to jobId. A repeated application is a 400.
func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	app, err := h.registry.Submit(r.Context(), vars["userId"], vars["jobId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// JobsWithApplicants lists the employer's jobs with applicant counts and ids.
func (h *ApplicationsHandler) JobsWithApplicants(w http.ResponseWriter, r *http.Request) {
	out, err := h.aggregator.JobsWithApplicantCounts(r.Context(), mux.Vars(r)["employerId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
