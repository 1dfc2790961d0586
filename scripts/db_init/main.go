package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/internal/repository/sqlite"
	"github.com/garnizeh/jobboard/pkg/logger"
	"github.com/garnizeh/jobboard/pkg/models"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Env error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	lg := logger.New("jobboard-db-init", level)

	ctx := context.Background()
	database, err := db.New(ctx, cfg.DatabasePath, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	if cfg.AdminEmail != "" {
		users := jobboard.NewUsers(sqlite.New(database, lg), lg)
		if err := ensureAdmin(ctx, users, cfg.AdminEmail, os.Getenv("JOBBOARD_ADMIN_PASSWORD")); err != nil {
			fmt.Fprintf(os.Stderr, "Admin seed error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Admin account ready: %s\n", cfg.AdminEmail)
	}

	fmt.Println("Database initialized successfully.")
}

// ensureAdmin registers email when missing and promotes it to admin.
func ensureAdmin(ctx context.Context, users *jobboard.Users, email, password string) error {
	u, err := users.FindByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		u, err = users.Register(ctx, jobboard.Registration{Email: email, Name: "Administrator", Password: password})
	}
	if err != nil {
		return err
	}
	_, err = users.SetRole(ctx, u.ID, models.RoleAdmin)
	return err
}
