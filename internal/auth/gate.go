package auth

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Gate authorizes an already authenticated identity against the stored user
// record. It trusts the identity it is given and never re-reads the token.
type Gate struct {
	users  repository.UserRepo
	logger *slog.Logger
}

func NewGate(users repository.UserRepo, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{users: users, logger: logger}
}

// Resolve loads the user behind email. Unknown users are forbidden.
func (g *Gate) Resolve(ctx context.Context, email string) (*models.User, error) {
	u, err := g.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.ErrForbidden, "unknown user")
		}
		return nil, apperr.Internal("load user", err)
	}
	return u, nil
}

// AuthorizeRole resolves email and requires one of roles. With no roles any
// stored user passes.
func (g *Gate) AuthorizeRole(ctx context.Context, email string, roles ...models.Role) (*models.User, error) {
	u, err := g.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(roles) > 0 && !slices.Contains(roles, u.Role) {
		g.logger.Warn("role check failed", "email", email, "role", u.Role, "want", roles)
		return nil, apperr.New(apperr.ErrForbidden, "insufficient role")
	}
	return u, nil
}

// AuthorizeAdmin passes only when email belongs to an admin.
func (g *Gate) AuthorizeAdmin(ctx context.Context, email string) error {
	_, err := g.AuthorizeRole(ctx, email, models.RoleAdmin)
	return err
}

// IsAdmin reports whether email belongs to an admin. Unknown users are not admins.
func (g *Gate) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := g.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, apperr.Internal("load user", err)
	}
	return u.Role == models.RoleAdmin, nil
}
