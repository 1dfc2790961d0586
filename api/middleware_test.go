package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garnizeh/jobboard/api"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository/mock"
)

func TestLoggingMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	})

	handler := api.LoggingMiddleware(next)
	req := httptest.NewRequest(http.MethodGet, "/log", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if string(b) != "ok" {
		t.Fatalf("unexpected body: %q", string(b))
	}
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := api.CORSMiddleware(next)

	// OPTIONS should return 204 and not call next
	reqOpt := httptest.NewRequest(http.MethodOptions, "/cors", nil)
	wOpt := httptest.NewRecorder()
	handler.ServeHTTP(wOpt, reqOpt)
	resOpt := wOpt.Result()
	defer resOpt.Body.Close()
	if resOpt.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for OPTIONS, got %d", resOpt.StatusCode)
	}
	if got := resOpt.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header set, got %q", got)
	}

	// GET should pass through and set headers
	reqGet := httptest.NewRequest(http.MethodGet, "/cors", nil)
	wGet := httptest.NewRecorder()
	handler.ServeHTTP(wGet, reqGet)
	resGet := wGet.Result()
	defer resGet.Body.Close()
	if resGet.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for GET, got %d", resGet.StatusCode)
	}
	if got := resGet.Header.Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PATCH") {
		t.Fatalf("expected Allow-Methods to include PATCH, got %q", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	pan := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := api.RecoveryMiddleware(pan)
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from panic recovery, got %d", w.Code)
	}
	e := decodeEnvelope(t, w)
	if e.Error != "internal" || strings.Contains(e.Message, "boom") {
		t.Fatalf("unexpected envelope for recovery: %+v", e)
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	w2 := httptest.NewRecorder()
	api.RecoveryMiddleware(ok).ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 for normal path, got %d", w2.Code)
	}
}

func TestJWTAuth(t *testing.T) {
	secret := "s3cr3t"
	issuer := auth.NewIssuer(secret, time.Hour)

	var gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := api.IdentityFromContext(r.Context())
		if !ok {
			t.Errorf("identity missing from context")
		} else {
			gotEmail = id.Email
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := api.JWTAuth(issuer)(next)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "a@b", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "MissingHeader", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "EmptyBearer", authHeader: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "BadToken", authHeader: "Bearer bad.token.here", wantStatus: http.StatusUnauthorized},
		{name: "NoneAlgorithm", authHeader: "Bearer " + noneToken, wantStatus: http.StatusUnauthorized},
		{name: "TwoTokens", authHeader: "Bearer a b", wantStatus: http.StatusUnauthorized},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jwt", nil)
			if c.authHeader != "" {
				req.Header.Set("Authorization", c.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != c.wantStatus {
				t.Fatalf("%s: want %d got %d", c.name, c.wantStatus, w.Code)
			}
			if e := decodeEnvelope(t, w); e.Error != "unauthenticated" {
				t.Fatalf("%s: expected unauthenticated kind, got %q", c.name, e.Error)
			}
		})
	}

	tokStr, err := issuer.Issue("a@b", "A")
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/jwt", nil)
	req.Header.Set("Authorization", "Bearer "+tokStr)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200 got %d", w.Code)
	}
	if gotEmail != "a@b" {
		t.Fatalf("expected identity a@b, got %q", gotEmail)
	}
}

func TestRequireRole(t *testing.T) {
	m := mock.NewMocks()
	m.Users.Rows = []models.User{{ID: "e1", Email: "boss@example.com", Role: models.RoleEmployer}}
	gate := auth.NewGate(m.Users, nil)

	var gotUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := api.UserFromContext(r.Context()); ok {
			gotUser = u.ID
		}
		w.WriteHeader(http.StatusOK)
	})

	// Without JWTAuth in front there is no identity.
	w := httptest.NewRecorder()
	api.RequireAdmin(gate)(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", w.Code)
	}
	if m.Users.Calls != 0 {
		t.Fatalf("expected no store access, got %d calls", m.Users.Calls)
	}

	issuer := auth.NewIssuer("k", time.Hour)
	tok, _ := issuer.Issue("boss@example.com", "")
	chain := func(mw func(http.Handler) http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		api.JWTAuth(issuer)(mw(next)).ServeHTTP(w, req)
		return w
	}

	if w := chain(api.RequireAdmin(gate)); w.Code != http.StatusForbidden {
		t.Fatalf("employer as admin: expected 403, got %d", w.Code)
	}
	if w := chain(api.RequireRole(gate, models.RoleEmployer)); w.Code != http.StatusOK || gotUser != "e1" {
		t.Fatalf("employer role: expected 200 with user e1, got %d %q", w.Code, gotUser)
	}
}
