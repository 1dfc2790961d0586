package db

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

// goose keeps its base FS, dialect and logger in package state.
var gooseMu sync.Mutex

// Migrate applies every pending goose migration found under "migrations" in
// fsys. Already applied versions are skipped, so it is safe to run on every
// start.
func Migrate(ctx context.Context, d *DB, fsys fs.FS) error {
	gooseMu.Lock()
	defer func() {
		goose.SetBaseFS(nil)
		gooseMu.Unlock()
	}()

	goose.SetBaseFS(fsys)
	goose.SetLogger(gooseLogger{d.logger})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.conn, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, d.conn)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	d.logger.Info("database migrated", "version", version)
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	l *slog.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}
