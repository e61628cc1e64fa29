package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"transaction-tracker/internal/config"
	"transaction-tracker/internal/domain"
	"transaction-tracker/internal/gateway"
	"transaction-tracker/internal/storage"
)

type importCmd struct {
	*env
	snapshot string
	sources  string
	out      string
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "import broker exports, store the merged history and export the portfolio"
}
func (*importCmd) Usage() string {
	return `tracker import [-snapshot YYYY-MM-DD] [-sources file] [-out file]

  Reads every source listed in the sources file, merges them into one
  history, replaces the stored history with it and writes the open
  positions as an investing.com portfolio file. Prints the run report.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "snapshot", "", "Build the portfolio as of this date, backing out later stock splits.")
	f.StringVar(&c.sources, "sources", "", "YAML file listing the sources (defaults to SOURCES_FILE).")
	f.StringVar(&c.out, "out", "", "Portfolio file to write (defaults to OUTPUT_DIR/investing_portfolio.csv).")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshot, err := parseSnapshot(c.snapshot)
	if err != nil {
		c.log.Error().Err(err).Msg("Invalid flag")
		return subcommands.ExitUsageError
	}

	sourcesFile := c.sources
	if sourcesFile == "" {
		sourcesFile = c.cfg.SourcesFile
	}
	sources, err := config.LoadSources(sourcesFile)
	if err != nil {
		c.log.Error().Err(err).Msg("Could not load sources")
		return subcommands.ExitFailure
	}

	db, err := c.openDB(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Could not open database")
		return subcommands.ExitFailure
	}
	defer db.Close()

	report, err := c.tracker(db, c.out).Run(ctx, sources, snapshot)
	if err != nil {
		c.log.Error().Err(err).Msg("Import failed")
		return subcommands.ExitFailure
	}
	if err := c.printJSON(report); err != nil {
		c.log.Error().Err(err).Msg("Could not print report")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type portfolioCmd struct {
	*env
	snapshot string
	out      string
	json     bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "rebuild the portfolio from the stored history" }
func (*portfolioCmd) Usage() string {
	return `tracker portfolio [-snapshot YYYY-MM-DD] [-json] [-out file]

  Rebuilds positions from the stored history without re-reading the
  sources, writes the investing.com portfolio file and prints the open
  positions.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "snapshot", "", "Build the portfolio as of this date, backing out later stock splits.")
	f.StringVar(&c.out, "out", "", "Portfolio file to write (defaults to OUTPUT_DIR/investing_portfolio.csv).")
	f.BoolVar(&c.json, "json", false, "Print the full run report as JSON.")
}

func (c *portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshot, err := parseSnapshot(c.snapshot)
	if err != nil {
		c.log.Error().Err(err).Msg("Invalid flag")
		return subcommands.ExitUsageError
	}

	db, err := c.openDB(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Could not open database")
		return subcommands.ExitFailure
	}
	defer db.Close()

	report, err := c.tracker(db, c.out).Rebuild(ctx, snapshot)
	if err != nil {
		c.log.Error().Err(err).Msg("Rebuild failed")
		return subcommands.ExitFailure
	}
	importID, err := storage.NewTransactionRepository(db.Conn(), c.log).LatestImportID(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Could not read import id")
		return subcommands.ExitFailure
	}
	report.RunSummary.ImportID = importID

	if c.json {
		err = c.printJSON(report)
	} else {
		for _, p := range report.Positions {
			if _, err = fmt.Fprintln(c.stdout, p); err != nil {
				break
			}
		}
	}
	if err != nil {
		c.log.Error().Err(err).Msg("Could not print portfolio")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type splitsCmd struct {
	*env
	file string
}

func (*splitsCmd) Name() string     { return "splits" }
func (*splitsCmd) Synopsis() string { return "add stock split events to the split table" }
func (*splitsCmd) Usage() string {
	return `tracker splits -f splits.csv

  Reads a CSV with the columns symbol_namespace, symbol, event_date,
  numerator and denominator and stores the events that are not known yet.
`
}

func (c *splitsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file of stock split events (required).")
}

func (c *splitsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	splits, err := gateway.NewSplitCSVReader().GetStockSplits(ctx, c.file)
	if err != nil {
		c.log.Error().Err(err).Msg("Could not read stock splits")
		return subcommands.ExitFailure
	}

	db, err := c.openDB(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Could not open database")
		return subcommands.ExitFailure
	}
	defer db.Close()

	inserted, err := storage.NewSplitRepository(db.Conn(), c.log).InsertMissing(ctx, splits)
	if err != nil {
		c.log.Error().Err(err).Msg("Could not store stock splits")
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.stdout, "%d of %d stock splits added\n", inserted, len(splits))
	return subcommands.ExitSuccess
}

type transactionsCmd struct {
	*env
	symbol string
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "print the stored transaction history" }
func (*transactionsCmd) Usage() string {
	return `tracker transactions [-symbol SYMBOL]

  Prints the merged history in merge order, one transaction per line.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Only print the transactions of this symbol.")
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := c.openDB(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Could not open database")
		return subcommands.ExitFailure
	}
	defer db.Close()

	repo := storage.NewTransactionRepository(db.Conn(), c.log)
	var transactions []domain.Transaction
	if c.symbol != "" {
		transactions, err = repo.GetBySymbol(ctx, c.symbol)
	} else {
		transactions, err = repo.GetAll(ctx)
	}
	if err != nil {
		c.log.Error().Err(err).Msg("Could not read transactions")
		return subcommands.ExitFailure
	}
	if err := gateway.NewTextPrinter(c.stdout).PrintAll(transactions); err != nil {
		c.log.Error().Err(err).Msg("Could not print transactions")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
