package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/jobboard/pkg/models"
)

var (
	// ErrNotFound indicates an entity was not located.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a write was rejected by a uniqueness constraint.
	ErrDuplicate = errors.New("repository: duplicate")
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, u *models.User) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) error
	GetJobByID(ctx context.Context, id string) (*models.Job, error)
	// ListOpenJobs returns jobs whose deadline is on or after today.
	ListOpenJobs(ctx context.Context, today models.Date) ([]models.Job, error)
	ListJobsByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
}

type ApplicationRepo interface {
	// CreateApplication returns ErrDuplicate when the (applicant, job) pair already exists.
	CreateApplication(ctx context.Context, a *models.Application) error
	ListAppliedJobIDs(ctx context.Context, applicantID string) ([]string, error)
	ListApplicationsByJobs(ctx context.Context, jobIDs []string) ([]models.Application, error)
}

type ProposalRepo interface {
	CreateProposal(ctx context.Context, p *models.InvestmentProposal) error
	ListProposals(ctx context.Context) ([]models.InvestmentProposal, error)
}
