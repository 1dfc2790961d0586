package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository/mock"
)

const testSecret = "test-secret"

func TestIssuer(t *testing.T) {
	t.Run("Should_issue_and_verify_token", func(t *testing.T) {
		iss := auth.NewIssuer(testSecret, time.Hour)
		tok, err := iss.Issue("ann@example.com", "Ann")
		require.NoError(t, err)

		claims, err := iss.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", claims.Email)
		assert.Equal(t, "Ann", claims.Name)
		assert.Equal(t, "jobboard", claims.Issuer)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("Should_reject_expired_token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		tok, err := auth.NewIssuer(testSecret, time.Hour).WithClock(func() time.Time { return past }).Issue("ann@example.com", "")
		require.NoError(t, err)

		_, err = auth.NewIssuer(testSecret, time.Hour).Verify(tok)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Should_reject_wrong_secret", func(t *testing.T) {
		tok, err := auth.NewIssuer("other", time.Hour).Issue("ann@example.com", "")
		require.NoError(t, err)

		_, err = auth.NewIssuer(testSecret, time.Hour).Verify(tok)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Should_reject_unsigned_token", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"email": "ann@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = auth.NewIssuer(testSecret, time.Hour).Verify(s)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Should_reject_token_without_expiry", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "ann@example.com"})
		s, err := tok.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = auth.NewIssuer(testSecret, time.Hour).Verify(s)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Should_reject_garbage", func(t *testing.T) {
		_, err := auth.NewIssuer(testSecret, time.Hour).Verify("bad.token.here")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "Valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "LowercaseScheme", header: "bearer abc", want: "abc"},
		{name: "Missing", header: "", wantErr: true},
		{name: "Blank", header: "   ", wantErr: true},
		{name: "SchemeOnly", header: "Bearer", wantErr: true},
		{name: "SchemeAndSpace", header: "Bearer ", wantErr: true},
		{name: "Basic", header: "Basic dXNlcjpwdw==", wantErr: true},
		{name: "ExtraParts", header: "Bearer a b", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := auth.BearerToken(c.header)
			if c.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestGate(t *testing.T) {
	ctx := context.Background()
	newGate := func() (*auth.Gate, *mock.Mocks) {
		m := mock.NewMocks()
		m.Users.Rows = []models.User{
			{ID: "u-admin", Email: "root@example.com", Role: models.RoleAdmin},
			{ID: "u-emp", Email: "boss@example.com", Role: models.RoleEmployer},
			{ID: "u-app", Email: "ann@example.com", Role: models.RoleApplicant},
		}
		return auth.NewGate(m.Users, nil), m
	}

	t.Run("Should_admit_admin", func(t *testing.T) {
		g, _ := newGate()
		assert.NoError(t, g.AuthorizeAdmin(ctx, "root@example.com"))
	})

	t.Run("Should_forbid_non_admin", func(t *testing.T) {
		g, _ := newGate()
		assert.ErrorIs(t, g.AuthorizeAdmin(ctx, "ann@example.com"), apperr.ErrForbidden)
	})

	t.Run("Should_forbid_unknown_user", func(t *testing.T) {
		g, _ := newGate()
		assert.ErrorIs(t, g.AuthorizeAdmin(ctx, "ghost@example.com"), apperr.ErrForbidden)
	})

	t.Run("Should_report_store_failure_as_internal", func(t *testing.T) {
		g, m := newGate()
		m.Users.Err = errors.New("db down")
		err := g.AuthorizeAdmin(ctx, "root@example.com")
		assert.ErrorIs(t, err, apperr.ErrInternal)
	})

	t.Run("Should_accept_any_listed_role", func(t *testing.T) {
		g, _ := newGate()
		u, err := g.AuthorizeRole(ctx, "boss@example.com", models.RoleEmployer, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "u-emp", u.ID)

		u, err = g.AuthorizeRole(ctx, "ann@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-app", u.ID)
	})

	t.Run("Should_answer_is_admin", func(t *testing.T) {
		g, _ := newGate()
		ok, err := g.IsAdmin(ctx, "root@example.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = g.IsAdmin(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.NoError(t, auth.CheckPassword(hash, "hunter2"))
	assert.ErrorIs(t, auth.CheckPassword(hash, "wrong"), apperr.ErrUnauthenticated)
}
