package jobboard

import (
	"context"
	"strings"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Aggregator reports, per employer job, who applied.
type Aggregator struct {
	jobs repository.JobRepo
	apps repository.ApplicationRepo
}

func NewAggregator(jobs repository.JobRepo, apps repository.ApplicationRepo) *Aggregator {
	return &Aggregator{jobs: jobs, apps: apps}
}

// JobsWithApplicantCounts returns every job owned by employerID with its
// applicant count and ids. No pagination.
func (a *Aggregator) JobsWithApplicantCounts(ctx context.Context, employerID string) ([]models.JobWithApplicants, error) {
	employerID = strings.TrimSpace(employerID)
	if employerID == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "employer id is required")
	}

	jobs, err := a.jobs.ListJobsByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperr.Internal("list employer jobs", err)
	}
	if len(jobs) == 0 {
		return []models.JobWithApplicants{}, nil
	}

	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	apps, err := a.apps.ListApplicationsByJobs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("list applications", err)
	}

	return AggregateApplicants(jobs, apps), nil
}

// AggregateApplicants joins jobs with apps on job id. Output follows the
// order of jobs; applicant ids follow the order of apps. Jobs without
// applications get a zero count and an empty, non-nil id list.
func AggregateApplicants(jobs []models.Job, apps []models.Application) []models.JobWithApplicants {
	byJob := make(map[string][]string, len(jobs))
	for _, app := range apps {
		byJob[app.JobID] = append(byJob[app.JobID], app.ApplicantID)
	}

	out := make([]models.JobWithApplicants, 0, len(jobs))
	for _, j := range jobs {
		ids := byJob[j.ID]
		if ids == nil {
			ids = []string{}
		}
		out = append(out, models.JobWithApplicants{
			JobData:              j,
			NumberOfApplications: len(ids),
			ApplicantIDs:         ids,
		})
	}
	return out
}
