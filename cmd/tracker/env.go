package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"transaction-tracker/internal/config"
	"transaction-tracker/internal/domain"
	"transaction-tracker/internal/gateway"
	"transaction-tracker/internal/storage"
	"transaction-tracker/internal/usecase"
)

// env carries what every command needs.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	stdout io.Writer
}

func (e *env) commands() []subcommands.Command {
	return []subcommands.Command{
		&importCmd{env: e},
		&portfolioCmd{env: e},
		&splitsCmd{env: e},
		&transactionsCmd{env: e},
	}
}

// openDB opens and migrates the tracker database.
func (e *env) openDB(ctx context.Context) (*storage.DB, error) {
	db, err := storage.New(storage.Config{Path: e.cfg.DBPath, Name: "tracker"})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// tracker wires the usecase on top of db, exporting to out (the configured
// portfolio file when empty).
func (e *env) tracker(db *storage.DB, out string) *usecase.TrackerUseCase {
	if out == "" {
		out = e.cfg.PortfolioFile()
	}
	return usecase.NewTrackerUseCase(
		gateway.NewCSVTransactionRepository(e.log),
		storage.NewTransactionRepository(db.Conn(), e.log),
		storage.NewSplitRepository(db.Conn(), e.log),
		gateway.NewInvestingWriter(out, e.log),
		e.cfg.SplitNamespace,
		e.log,
	)
}

func (e *env) printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}
	_, err = fmt.Fprintln(e.stdout, string(output))
	return err
}

// parseSnapshot reads an optional YYYY-MM-DD flag value.
func parseSnapshot(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot date %q, expected YYYY-MM-DD", s)
	}
	return &d, nil
}
