package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Test helpers and mocks. Each repo keeps its rows in insertion order and
// enforces the same uniqueness rules as the SQLite schema.
type Mocks struct {
	Users        *UserRepo
	Jobs         *JobRepo
	Applications *ApplicationRepo
	Proposals    *ProposalRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:        &UserRepo{},
		Jobs:         &JobRepo{},
		Applications: &ApplicationRepo{},
		Proposals:    &ProposalRepo{},
	}
}

var (
	_ repository.UserRepo        = (*UserRepo)(nil)
	_ repository.JobRepo         = (*JobRepo)(nil)
	_ repository.ApplicationRepo = (*ApplicationRepo)(nil)
	_ repository.ProposalRepo    = (*ProposalRepo)(nil)
)

type UserRepo struct {
	mu    sync.Mutex
	Rows  []models.User
	Err   error
	Calls int
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	for _, row := range m.Rows {
		if row.ID == u.ID || strings.EqualFold(row.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	m.Rows = append(m.Rows, *u)
	return nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, row := range m.Rows {
		if row.ID == id {
			u := row
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, row := range m.Rows {
		if strings.EqualFold(row.Email, email) {
			u := row
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.User(nil), m.Rows...), nil
}

func (m *UserRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	for i, row := range m.Rows {
		if row.ID == u.ID {
			m.Rows[i].Name = u.Name
			m.Rows[i].PhotoURL = u.PhotoURL
			m.Rows[i].Profile = u.Profile
			m.Rows[i].Updated = u.Updated
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *UserRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	for i, row := range m.Rows {
		if row.ID == id {
			m.Rows[i].Role = role
			return nil
		}
	}
	return repository.ErrNotFound
}

// Get returns a copy of the stored user with id, bypassing error injection.
func (m *UserRepo) Get(id string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.Rows {
		if row.ID == id {
			return row, true
		}
	}
	return models.User{}, false
}

type JobRepo struct {
	mu   sync.Mutex
	Rows []models.Job
	Err  error
}

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, row := range m.Rows {
		if row.ID == j.ID {
			return repository.ErrDuplicate
		}
	}
	m.Rows = append(m.Rows, *j)
	return nil
}

func (m *JobRepo) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, row := range m.Rows {
		if row.ID == id {
			j := row
			return &j, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *JobRepo) ListOpenJobs(ctx context.Context, today models.Date) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Job
	for _, row := range m.Rows {
		if !row.ApplicationDeadline.Expired(today) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *JobRepo) ListJobsByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Job
	for _, row := range m.Rows {
		if row.EmployerID == employerID {
			out = append(out, row)
		}
	}
	return out, nil
}

type ApplicationRepo struct {
	mu   sync.Mutex
	Rows []models.Application
	Err  error
}

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, row := range m.Rows {
		if row.ApplicantID == a.ApplicantID && row.JobID == a.JobID {
			return repository.ErrDuplicate
		}
	}
	m.Rows = append(m.Rows, *a)
	return nil
}

func (m *ApplicationRepo) ListAppliedJobIDs(ctx context.Context, applicantID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []string
	for _, row := range m.Rows {
		if row.ApplicantID == applicantID {
			out = append(out, row.JobID)
		}
	}
	return out, nil
}

func (m *ApplicationRepo) ListApplicationsByJobs(ctx context.Context, jobIDs []string) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	want := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		want[id] = struct{}{}
	}
	var out []models.Application
	for _, row := range m.Rows {
		if _, ok := want[row.JobID]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// Count returns how many applications exist for the pair.
func (m *ApplicationRepo) Count(applicantID, jobID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.Rows {
		if row.ApplicantID == applicantID && row.JobID == jobID {
			n++
		}
	}
	return n
}

type ProposalRepo struct {
	mu   sync.Mutex
	Rows []models.InvestmentProposal
	Err  error
}

func (m *ProposalRepo) CreateProposal(ctx context.Context, p *models.InvestmentProposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Rows = append(m.Rows, *p)
	return nil
}

func (m *ProposalRepo) ListProposals(ctx context.Context) ([]models.InvestmentProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.InvestmentProposal(nil), m.Rows...), nil
}
