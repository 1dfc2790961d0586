package jobboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Postings creates jobs on behalf of employers.
type Postings struct {
	jobs   repository.JobRepo
	clock  Clock
	logger *slog.Logger
}

func NewPostings(jobs repository.JobRepo, clock Clock, logger *slog.Logger) *Postings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postings{jobs: jobs, clock: clock, logger: logger}
}

type NewJob struct {
	Title               string          `json:"title" validate:"required,max=300"`
	ApplicationDeadline string          `json:"applicationDeadline" validate:"required"`
	JobData             json.RawMessage `json:"jobData"`
}

// Post stores a job owned by employerID. The deadline must parse as
// YYYY-MM-DD and must not already be in the past.
func (p *Postings) Post(ctx context.Context, employerID string, in NewJob) (*models.Job, error) {
	if strings.TrimSpace(employerID) == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "employer id is required")
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	deadline, err := models.ParseDate(in.ApplicationDeadline)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "applicationDeadline must be YYYY-MM-DD", err)
	}
	if deadline.Expired(p.clock.Today()) {
		return nil, apperr.New(apperr.ErrInvalidInput, "applicationDeadline is in the past")
	}

	j := &models.Job{
		ID:                  uuid.NewString(),
		EmployerID:          employerID,
		Title:               in.Title,
		ApplicationDeadline: deadline,
		JobData:             in.JobData,
		Created:             nowMillis(),
	}
	if err := p.jobs.CreateJob(ctx, j); err != nil {
		return nil, apperr.Internal("create job", err)
	}
	p.logger.Info("job posted", "job_id", j.ID, "employer_id", employerID, "deadline", deadline)
	return j, nil
}
