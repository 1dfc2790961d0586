package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garnizeh/jobboard/internal/apperr"
)

const issuerName = "jobboard"

// Claims is the decoded identity carried by a bearer token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of i that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

// Issue mints a token for email valid for the issuer's TTL.
func (i *Issuer) Issue(email, name string) (string, error) {
	now := i.now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", apperr.Internal("sign token", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims. Every
// failure is reported as unauthenticated.
func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrUnauthenticated, "invalid or expired token", err)
	}
	if !parsed.Valid || claims.Email == "" {
		return nil, apperr.New(apperr.ErrUnauthenticated, "invalid or expired token")
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value. A
// missing header, a foreign scheme and an empty token are all rejected.
func BearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", apperr.New(apperr.ErrUnauthenticated, "missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) == 0 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperr.New(apperr.ErrUnauthenticated, "invalid authorization header format")
	}
	if len(parts) != 2 {
		return "", apperr.New(apperr.ErrUnauthenticated, fmt.Sprintf("expected one bearer token, got %d", len(parts)-1))
	}
	return parts[1], nil
}
