package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/garnizeh/jobboard/pkg/models"
)

var applicationColumns = []string{"id", "applicant_id", "job_id", "created"}

func scanApplication(s rowScanner) (models.Application, error) {
	var a models.Application
	err := s.Scan(&a.ID, &a.ApplicantID, &a.JobID, &a.Created)
	return a, err
}

// CreateApplication inserts a. The UNIQUE(applicant_id, job_id) constraint
// rejects a second application for the same pair with repository.ErrDuplicate.
func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	q := squirrel.Insert("applications").
		Columns(applicationColumns...).
		Values(a.ID, a.ApplicantID, a.JobID, a.Created)
	if _, err := r.exec(ctx, q); err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *SQLiteRepo) ListAppliedJobIDs(ctx context.Context, applicantID string) ([]string, error) {
	q := squirrel.Select("job_id").
		From("applications").
		Where(squirrel.Eq{"applicant_id": applicantID}).
		OrderBy("rowid")
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, func(s rowScanner) (string, error) {
		var id string
		err := s.Scan(&id)
		return id, err
	})
}

func (r *SQLiteRepo) ListApplicationsByJobs(ctx context.Context, jobIDs []string) ([]models.Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	q := squirrel.Select(applicationColumns...).
		From("applications").
		Where(squirrel.Eq{"job_id": jobIDs}).
		OrderBy("rowid")
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, scanApplication)
}
