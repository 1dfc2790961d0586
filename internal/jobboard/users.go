package jobboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Users manages user records. Email is unique; role changes are reserved
// for admins and enforced by the caller.
type Users struct {
	repo   repository.UserRepo
	logger *slog.Logger
}

func NewUsers(repo repository.UserRepo, logger *slog.Logger) *Users {
	if logger == nil {
		logger = slog.Default()
	}
	return &Users{repo: repo, logger: logger}
}

// Registration is the input for Register. Admin cannot be self-assigned.
type Registration struct {
	Email    string          `json:"email" validate:"required,email,max=254"`
	Name     string          `json:"name" validate:"max=200"`
	PhotoURL string          `json:"photoURL" validate:"omitempty,url"`
	Role     models.Role     `json:"role" validate:"omitempty,oneof=applicant employer"`
	Password string          `json:"password" validate:"omitempty,min=6,max=72"`
	Profile  json.RawMessage `json:"profile"`
}

func (s *Users) Register(ctx context.Context, in Registration) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RoleApplicant
	}

	now := nowMillis()
	u := &models.User{
		ID:       uuid.NewString(),
		Email:    in.Email,
		Role:     in.Role,
		Name:     in.Name,
		PhotoURL: in.PhotoURL,
		Profile:  in.Profile,
		Created:  now,
		Updated:  now,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.ErrConflict, "User already exists", err)
		}
		return nil, apperr.Internal("create user", err)
	}
	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "email is required")
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "userNotFound")
		}
		return nil, apperr.Internal("find user", err)
	}
	return u, nil
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Internal("list users", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	Name     *string         `json:"name" validate:"omitempty,max=200"`
	PhotoURL *string         `json:"photoURL" validate:"omitempty,url"`
	Profile  json.RawMessage `json:"profile"`
}

func (s *Users) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "user id is required")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "user not found")
		}
		return nil, apperr.Internal("load user", err)
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.PhotoURL != nil {
		u.PhotoURL = *in.PhotoURL
	}
	if in.Profile != nil {
		u.Profile = in.Profile
	}
	u.Updated = nowMillis()
	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "user not found")
		}
		return nil, apperr.Internal("update user", err)
	}
	return u, nil
}

// RoleChange reports the outcome of SetRole.
type RoleChange struct {
	MatchedCount  int `json:"matchedCount"`
	ModifiedCount int `json:"modifiedCount"`
}

// SetRole changes the role of user id. Unknown role values are rejected
// before the store is touched.
func (s *Users) SetRole(ctx context.Context, id string, role models.Role) (RoleChange, error) {
	if strings.TrimSpace(id) == "" {
		return RoleChange{}, apperr.New(apperr.ErrInvalidInput, "user id is required")
	}
	if !role.Valid() {
		return RoleChange{}, apperr.New(apperr.ErrInvalidInput, "role must be one of applicant, employer, admin")
	}
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return RoleChange{}, apperr.New(apperr.ErrNotFound, "user not found")
		}
		return RoleChange{}, apperr.Internal("load user", err)
	}
	if u.Role == role {
		return RoleChange{MatchedCount: 1}, nil
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return RoleChange{}, apperr.New(apperr.ErrNotFound, "user not found")
		}
		return RoleChange{}, apperr.Internal("update role", err)
	}
	s.logger.Info("role changed", "user_id", id, "from", u.Role, "to", role)
	return RoleChange{MatchedCount: 1, ModifiedCount: 1}, nil
}
