package jobboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Registry records that an applicant applied to a job.
type Registry struct {
	apps   repository.ApplicationRepo
	jobs   repository.JobRepo
	users  repository.UserRepo
	logger *slog.Logger
}

func NewRegistry(apps repository.ApplicationRepo, jobs repository.JobRepo, users repository.UserRepo, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{apps: apps, jobs: jobs, users: users, logger: logger}
}

// Submit inserts an application for (applicantID, jobID). Uniqueness is
// enforced by the store in the same write, so concurrent submissions for
// one pair yield exactly one record and the losers get a conflict.
func (r *Registry) Submit(ctx context.Context, applicantID, jobID string) (*models.Application, error) {
	applicantID = strings.TrimSpace(applicantID)
	jobID = strings.TrimSpace(jobID)
	if applicantID == "" || jobID == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "user id and job id are required")
	}

	if _, err := r.jobs.GetJobByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "job not found")
		}
		return nil, apperr.Internal("load job", err)
	}
	if _, err := r.users.GetUserByID(ctx, applicantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "user not found")
		}
		return nil, apperr.Internal("load applicant", err)
	}

	a := &models.Application{
		ID:          uuid.NewString(),
		ApplicantID: applicantID,
		JobID:       jobID,
		Created:     nowMillis(),
	}
	if err := r.apps.CreateApplication(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.ErrConflict, "you have already applied to this job", err)
		}
		return nil, apperr.Internal("create application", err)
	}

	r.logger.Info("application submitted", "application_id", a.ID, "applicant_id", applicantID, "job_id", jobID)
	return a, nil
}
