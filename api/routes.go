package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Repos groups the stores the HTTP layer is built on.
type Repos struct {
	Users        repository.UserRepo
	Jobs         repository.JobRepo
	Applications repository.ApplicationRepo
	Proposals    repository.ProposalRepo
}

// Options carries the optional pieces of SetupRoutes.
type Options struct {
	Version   string
	BuildTime string
	Clock     jobboard.Clock
	DB        Pinger
	Logger    *slog.Logger
}

func SetupRoutes(cfg *config.Config, repos Repos, opts Options) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, apperr.New(apperr.ErrNotFound, "route not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "method not allowed", Error: "method_not_allowed"})
	})

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Services
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenDuration)
	gate := auth.NewGate(repos.Users, opts.Logger)
	clock := opts.Clock
	if clock.Now == nil {
		clock = jobboard.SystemClock(clock.Loc)
	}

	// Create handlers
	systemHandler := &SystemHandler{DB: opts.DB}
	authHandler := NewAuthHandler(issuer, gate, repos.Users)
	usersHandler := NewUsersHandler(jobboard.NewUsers(repos.Users, opts.Logger))
	jobsHandler := NewJobsHandler(
		jobboard.NewFeed(repos.Jobs, repos.Applications),
		jobboard.NewPostings(repos.Jobs, clock, opts.Logger),
		clock,
	)
	applicationsHandler := NewApplicationsHandler(
		jobboard.NewRegistry(repos.Applications, repos.Jobs, repos.Users, opts.Logger),
		jobboard.NewAggregator(repos.Jobs, repos.Applications),
	)
	proposalsHandler := NewProposalsHandler(jobboard.NewProposals(repos.Proposals))

	// Preflight on any path. Matched with a func, not Methods, so unknown
	// paths still 404 instead of 405.
	r.MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
		return req.Method == http.MethodOptions
	}).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Open endpoints
	r.HandleFunc("/", systemHandler.RootHandler).Methods(http.MethodGet)
	r.HandleFunc("/version", systemHandler.VersionHandler(opts.Version, opts.BuildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/jwt", authHandler.IssueToken).Methods(http.MethodPost)
	r.HandleFunc("/user", usersHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/user", usersHandler.GetByEmail).Methods(http.MethodGet)
	r.HandleFunc("/userInfo/edit/{id}", usersHandler.UpdateProfile).Methods(http.MethodPut)
	r.HandleFunc("/user/{userId}/job/{jobId}", applicationsHandler.Apply).Methods(http.MethodPost)
	r.HandleFunc("/jobs/nonExpired/{userId}", jobsHandler.NonExpired).Methods(http.MethodGet)
	r.HandleFunc("/jobs/applied/{userId}", jobsHandler.Applied).Methods(http.MethodGet)
	r.HandleFunc("/employer/{employerId}/jobsWithApplicants", applicationsHandler.JobsWithApplicants).Methods(http.MethodGet)

	// Bearer token required
	authed := r.NewRoute().Subrouter()
	authed.Use(JWTAuth(issuer))
	authed.HandleFunc("/user/admin/{email}", authHandler.CheckAdmin).Methods(http.MethodGet)

	// Any stored user
	members := authed.NewRoute().Subrouter()
	members.Use(RequireRole(gate))
	members.HandleFunc("/investmentProposals", proposalsHandler.Create).Methods(http.MethodPost)

	// Employers and admins
	posters := authed.NewRoute().Subrouter()
	posters.Use(RequireRole(gate, models.RoleEmployer, models.RoleAdmin))
	posters.HandleFunc("/jobs", jobsHandler.Create).Methods(http.MethodPost)

	// Admins
	admin := authed.NewRoute().Subrouter()
	admin.Use(RequireAdmin(gate))
	admin.HandleFunc("/users", usersHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/admin/{id}", usersHandler.SetRole).Methods(http.MethodPatch)
	admin.HandleFunc("/investmentProposals", proposalsHandler.List).Methods(http.MethodGet)

	return r
}
