package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/garnizeh/jobboard/pkg/models"
)

var jobColumns = []string{"id", "employer_id", "title", "application_deadline", "job_data", "created"}

func scanJob(s rowScanner) (models.Job, error) {
	var j models.Job
	var deadline, data string
	if err := s.Scan(&j.ID, &j.EmployerID, &j.Title, &deadline, &data, &j.Created); err != nil {
		return models.Job{}, err
	}
	j.ApplicationDeadline = models.Date(deadline)
	j.JobData = []byte(data)
	return j, nil
}

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	q := squirrel.Insert("jobs").
		Columns(jobColumns...).
		Values(j.ID, j.EmployerID, j.Title, string(j.ApplicationDeadline), jsonText(j.JobData), j.Created)
	if _, err := r.exec(ctx, q); err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *SQLiteRepo) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	row, err := r.queryRow(ctx, squirrel.Select(jobColumns...).From("jobs").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	j, err := scanJob(row)
	if err != nil {
		return nil, notFound(err)
	}
	return &j, nil
}

// ListOpenJobs returns jobs whose deadline is today or later, in insertion
// order. Deadlines are fixed-width YYYY-MM-DD text, so the string comparison
// is a date comparison.
func (r *SQLiteRepo) ListOpenJobs(ctx context.Context, today models.Date) ([]models.Job, error) {
	q := squirrel.Select(jobColumns...).
		From("jobs").
		Where(squirrel.GtOrEq{"application_deadline": string(today)}).
		OrderBy("rowid")
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, scanJob)
}

func (r *SQLiteRepo) ListJobsByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	q := squirrel.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"employer_id": employerID}).
		OrderBy("rowid")
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, scanJob)
}
