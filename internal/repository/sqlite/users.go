package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/garnizeh/jobboard/pkg/models"
)

var userColumns = []string{"id", "email", "role", "name", "photo_url", "profile", "password_hash", "created", "updated"}

func scanUser(s rowScanner) (models.User, error) {
	var u models.User
	var profile string
	if err := s.Scan(&u.ID, &u.Email, &u.Role, &u.Name, &u.PhotoURL, &profile, &u.PasswordHash, &u.Created, &u.Updated); err != nil {
		return models.User{}, err
	}
	u.Profile = []byte(profile)
	return u, nil
}

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	q := squirrel.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Email, string(u.Role), u.Name, u.PhotoURL, jsonText(u.Profile), u.PasswordHash, u.Created, u.Updated)
	if _, err := r.exec(ctx, q); err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *SQLiteRepo) getUser(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	row, err := r.queryRow(ctx, squirrel.Select(userColumns...).From("users").Where(where))
	if err != nil {
		return nil, err
	}
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": id})
}

// GetUserByEmail matches case-insensitively through the column's NOCASE collation.
func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

func (r *SQLiteRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.query(ctx, squirrel.Select(userColumns...).From("users").OrderBy("rowid"))
	if err != nil {
		return nil, err
	}
	return scanAll(rows, scanUser)
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	q := squirrel.Update("users").
		Set("name", u.Name).
		Set("photo_url", u.PhotoURL).
		Set("profile", jsonText(u.Profile)).
		Set("updated", u.Updated).
		Where(squirrel.Eq{"id": u.ID})
	return r.execOne(ctx, q)
}

func (r *SQLiteRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	q := squirrel.Update("users").
		Set("role", string(role)).
		Set("updated", now()).
		Where(squirrel.Eq{"id": id})
	if err := r.execOne(ctx, q); err != nil {
		return err
	}
	r.logger.Debug("user role updated", "user_id", id, "role", role)
	return nil
}
