package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/pkg/models"
)

type ctxKey string

const (
	CtxIdentity ctxKey = "identity"
	CtxUser     ctxKey = "user"
)

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// IdentityFromContext returns the claims placed by JWTAuth.
func IdentityFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(CtxIdentity).(*auth.Claims)
	return c, ok && c != nil
}

// UserFromContext returns the stored user placed by RequireRole.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(CtxUser).(*models.User)
	return u, ok && u != nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote", r.RemoteAddr),
		)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeError(w, r, apperr.Internal("panic", fmt.Errorf("%v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// JWTAuth rejects requests without a valid bearer token before the handler
// runs and stores the verified claims under CtxIdentity.
func JWTAuth(issuer *auth.Issuer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, r, err)
				return
			}
			claims, err := issuer.Verify(token)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), CtxIdentity, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole loads the user behind the token identity and requires one of
// roles; with no roles any stored user passes. It must run after JWTAuth.
func RequireRole(gate *auth.Gate, roles ...models.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeError(w, r, apperr.New(apperr.ErrUnauthenticated, "unauthorized access"))
				return
			}
			u, err := gate.AuthorizeRole(r.Context(), id.Email, roles...)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUser, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAdmin(gate *auth.Gate) mux.MiddlewareFunc {
	return RequireRole(gate, models.RoleAdmin)
}
