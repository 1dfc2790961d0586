package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/jobboard/internal/apperr"
)

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal("hash password", err)
	}
	return string(hash), nil
}

// CheckPassword compares pw with a stored bcrypt hash.
func CheckPassword(hash, pw string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)); err != nil {
		return apperr.Wrap(apperr.ErrUnauthenticated, "credentials not found", err)
	}
	return nil
}
