package models

import (
	"encoding/json"
)

// Domain models matching the database schema in db/migrations/00001_init.sql

// Role is the access level of a user. Only the values below are accepted.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleEmployer || r == RoleAdmin
}

type User struct {
	ID           string          `json:"id" db:"id"`
	Email        string          `json:"email" db:"email" validate:"required,email"`
	Role         Role            `json:"role" db:"role" validate:"required,oneof=applicant employer admin"`
	Name         string          `json:"name,omitempty" db:"name"`
	PhotoURL     string          `json:"photoURL,omitempty" db:"photo_url"`
	Profile      json.RawMessage `json:"profile,omitempty" db:"profile"`
	PasswordHash string          `json:"-" db:"password_hash"`
	Created      int64           `json:"created" db:"created"`
	Updated      int64           `json:"updated" db:"updated"`
}

type Job struct {
	ID                  string          `json:"id" db:"id"`
	EmployerID          string          `json:"employerId" db:"employer_id"`
	Title               string          `json:"title" db:"title"`
	ApplicationDeadline Date            `json:"applicationDeadline" db:"application_deadline"`
	JobData             json.RawMessage `json:"jobData,omitempty" db:"job_data"`
	Created             int64           `json:"created" db:"created"`
}

type Application struct {
	ID          string `json:"id" db:"id"`
	ApplicantID string `json:"applicantId" db:"applicant_id"`
	JobID       string `json:"jobId" db:"job_id"`
	Created     int64  `json:"created" db:"created"`
}

// JobWithApplicants is the per-job projection returned to employers.
type JobWithApplicants struct {
	JobData              Job      `json:"jobData"`
	NumberOfApplications int      `json:"numberOfApplications"`
	ApplicantIDs         []string `json:"applicantIds"`
}

type InvestmentProposal struct {
	ID      string          `json:"id" db:"id"`
	UserID  string          `json:"userId" db:"user_id"`
	Data    json.RawMessage `json:"data" db:"data"`
	Created int64           `json:"created" db:"created"`
}
