package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garnizeh/jobboard/api"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository/mock"
)

const (
	testSecret = "testsecret"
	today      = models.Date("2024-06-15")
)

func init() {
	api.SetLogger(slog.New(slog.DiscardHandler))
}

// seededMocks returns stores holding one user per role and a few jobs.
func seededMocks() *mock.Mocks {
	m := mock.NewMocks()
	m.Users.Rows = []models.User{
		{ID: "admin-1", Email: "root@example.com", Role: models.RoleAdmin, Name: "Root"},
		{ID: "emp-1", Email: "boss@example.com", Role: models.RoleEmployer, Name: "Boss"},
		{ID: "app-1", Email: "ann@example.com", Role: models.RoleApplicant, Name: "Ann"},
		{ID: "app-2", Email: "bob@example.com", Role: models.RoleApplicant, Name: "Bob"},
	}
	m.Jobs.Rows = []models.Job{
		{ID: "job-late", EmployerID: "emp-1", Title: "Late", ApplicationDeadline: "2024-09-01"},
		{ID: "job-today", EmployerID: "emp-1", Title: "Today", ApplicationDeadline: today},
		{ID: "job-gone", EmployerID: "emp-1", Title: "Gone", ApplicationDeadline: "2024-06-14"},
		{ID: "job-soon", EmployerID: "emp-2", Title: "Soon", ApplicationDeadline: "2024-07-01"},
	}
	return m
}

func newHandler(m *mock.Mocks) http.Handler {
	cfg := &config.Config{JWTSecret: testSecret, TokenDuration: time.Hour}
	return api.SetupRoutes(cfg, api.Repos{
		Users:        m.Users,
		Jobs:         m.Jobs,
		Applications: m.Applications,
		Proposals:    m.Proposals,
	}, api.Options{
		Version:   "test",
		BuildTime: "now",
		Clock:     jobboard.FixedClock(today),
		Logger:    slog.New(slog.DiscardHandler),
	})
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	tok, err := auth.NewIssuer(testSecret, time.Hour).Issue(email, "")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func expiredTokenFor(t *testing.T, email string) string {
	t.Helper()
	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := auth.NewIssuer(testSecret, time.Hour).WithClock(past).Issue(email, "")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// do sends body (marshalled unless it is a string) and returns the recorder.
func do(h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("body is not an error envelope: %v (%s)", err, w.Body.String())
	}
	if e.Message == "" || e.Error == "" {
		t.Fatalf("incomplete error envelope: %s", w.Body.String())
	}
	return e
}

func newRequest(method, path string, body []byte) *http.Request {
	return httptest.NewRequest(method, path, bytes.NewReader(body))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
