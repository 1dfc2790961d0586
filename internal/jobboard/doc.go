// Package jobboard holds the job-matching and application-tracking rules.
//
// Registry records applications and guarantees at most one per applicant and
// job. Feed splits the open jobs into those an applicant has not applied to
// and those it has. Aggregator joins an employer's jobs with their
// applications. Users, Postings and Proposals cover the surrounding records.
//
// Services depend only on the interfaces in pkg/repository and report
// failures as apperr kinds.
package jobboard
