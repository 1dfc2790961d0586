package jobboard

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Feed derives an applicant's view of the open jobs.
type Feed struct {
	jobs repository.JobRepo
	apps repository.ApplicationRepo
}

func NewFeed(jobs repository.JobRepo, apps repository.ApplicationRepo) *Feed {
	return &Feed{jobs: jobs, apps: apps}
}

// Available returns open jobs the user has not applied to, in store order.
func (f *Feed) Available(ctx context.Context, userID string, today models.Date) ([]models.Job, error) {
	available, _, err := f.partition(ctx, userID, today)
	return available, err
}

// Applied returns open jobs the user has applied to, earliest deadline first.
func (f *Feed) Applied(ctx context.Context, userID string, today models.Date) ([]models.Job, error) {
	_, applied, err := f.partition(ctx, userID, today)
	return applied, err
}

func (f *Feed) partition(ctx context.Context, userID string, today models.Date) ([]models.Job, []models.Job, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil, apperr.New(apperr.ErrInvalidInput, "user id is required")
	}

	ids, err := f.apps.ListAppliedJobIDs(ctx, userID)
	if err != nil {
		return nil, nil, apperr.Internal("list applied job ids", err)
	}
	applied := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		applied[id] = struct{}{}
	}

	open, err := f.jobs.ListOpenJobs(ctx, today)
	if err != nil {
		return nil, nil, apperr.Internal("list open jobs", err)
	}

	available, mine := PartitionJobs(open, applied, today)
	return available, mine, nil
}

// PartitionJobs splits the jobs whose deadline is not before today into
// those absent from applied and those present in it. Every open job lands in
// exactly one of the two results; the second is sorted by deadline, then id.
// Both results are non-nil.
func PartitionJobs(jobs []models.Job, applied map[string]struct{}, today models.Date) ([]models.Job, []models.Job) {
	available := make([]models.Job, 0, len(jobs))
	mine := make([]models.Job, 0, len(applied))
	for _, j := range jobs {
		if j.ApplicationDeadline.Expired(today) {
			continue
		}
		if _, ok := applied[j.ID]; ok {
			mine = append(mine, j)
		} else {
			available = append(available, j)
		}
	}
	slices.SortStableFunc(mine, func(a, b models.Job) int {
		return cmp.Or(
			cmp.Compare(a.ApplicationDeadline, b.ApplicationDeadline),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return available, mine
}
