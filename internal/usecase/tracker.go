package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"transaction-tracker/internal/domain"
)

// TrackerUseCase orchestrates import, merge, persistence and portfolio export.
type TrackerUseCase struct {
	source   TransactionSource
	store    TransactionStore
	adjuster *SplitAdjuster
	exporter PortfolioExporter
	log      zerolog.Logger

	now func() time.Time // end of the merge window
}

// NewTrackerUseCase creates a new instance of the usecase.
func NewTrackerUseCase(source TransactionSource, store TransactionStore, splits SplitRepository, exporter PortfolioExporter, namespace string, log zerolog.Logger) *TrackerUseCase {
	return &TrackerUseCase{
		source:   source,
		store:    store,
		adjuster: NewSplitAdjuster(splits, namespace, log),
		exporter: exporter,
		log:      log.With().Str("component", "tracker").Logger(),
		now:      time.Now,
	}
}

// ImportAll reads every source, drops rows that do not move positions and
// chain-merges the rest. Any failure aborts the whole import.
func (uc *TrackerUseCase) ImportAll(ctx context.Context, sources []domain.Source) ([]domain.Transaction, []domain.SourceSummary, error) {
	lists := make([][]domain.Transaction, 0, len(sources))
	summaries := make([]domain.SourceSummary, 0, len(sources))

	for _, src := range sources {
		transactions, err := uc.source.GetTransactions(ctx, src.Path, src.Account, src.Encoding)
		if err != nil {
			return nil, nil, fmt.Errorf("could not get transactions for %s: %w", src.Account, err)
		}

		kept := filterPositional(transactions)
		summaries = append(summaries, domain.SourceSummary{
			Account:           src.Account,
			Path:              src.Path,
			TransactionsRead:  len(transactions),
			TransactionsKept:  len(kept),
			OtherRowsFiltered: len(transactions) - len(kept),
		})
		uc.log.Info().
			Str("account", src.Account).
			Int("read", len(transactions)).
			Int("kept", len(kept)).
			Msg("Imported transactions")
		lists = append(lists, kept)
	}

	merged, err := MergeAll(lists, uc.now())
	if err != nil {
		return nil, nil, err
	}
	return merged, summaries, nil
}

// BuildPortfolio folds transactions into a portfolio. With a snapshot date,
// records after it are skipped and later splits are backed out.
func (uc *TrackerUseCase) BuildPortfolio(ctx context.Context, transactions []domain.Transaction, snapshot *time.Time) (*Portfolio, error) {
	if i, ok := domain.IsSortedByDate(transactions); !ok {
		return nil, fmt.Errorf("%w: at index %d", domain.ErrUnsortedTransactions, i)
	}

	p := NewPortfolio(uc.log)
	for _, tx := range transactions {
		if snapshot != nil && domain.Day(tx.OpenDate).After(domain.Day(*snapshot)) {
			continue
		}
		p.Record(tx)
	}

	if snapshot != nil {
		if err := uc.adjuster.Apply(ctx, *snapshot, p); err != nil {
			return nil, fmt.Errorf("could not apply stock splits: %w", err)
		}
	}
	return p, nil
}

// Run imports every source, builds the portfolio, exports its open positions
// and finally replaces the stored history with the merged list. A failed build
// or export leaves the stored history untouched.
func (uc *TrackerUseCase) Run(ctx context.Context, sources []domain.Source, snapshot *time.Time) (*domain.RunReport, error) {
	// Step 1: Import and merge
	merged, summaries, err := uc.ImportAll(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("could not import transactions: %w", err)
	}

	// Step 2: Build
	p, err := uc.BuildPortfolio(ctx, merged, snapshot)
	if err != nil {
		return nil, err
	}

	// Step 3: Export
	report, err := uc.export(ctx, p, snapshot)
	if err != nil {
		return nil, err
	}

	// Step 4: Persist
	importID, err := uc.store.ReplaceAll(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("could not store transactions: %w", err)
	}
	report.RunSummary.ImportID = importID
	report.RunSummary.TotalTransactionsMerged = len(merged)
	report.Sources = summaries
	return report, nil
}

// Rebuild builds and exports the portfolio from the stored history.
func (uc *TrackerUseCase) Rebuild(ctx context.Context, snapshot *time.Time) (*domain.RunReport, error) {
	transactions, err := uc.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get stored transactions: %w", err)
	}
	p, err := uc.BuildPortfolio(ctx, transactions, snapshot)
	if err != nil {
		return nil, err
	}
	report, err := uc.export(ctx, p, snapshot)
	if err != nil {
		return nil, err
	}
	report.RunSummary.TotalTransactionsMerged = len(transactions)
	return report, nil
}

func (uc *TrackerUseCase) export(ctx context.Context, p *Portfolio, snapshot *time.Time) (*domain.RunReport, error) {
	open := p.OpenPositions()
	written, err := uc.exporter.ExportPositions(ctx, open)
	if err != nil {
		return nil, fmt.Errorf("could not export portfolio: %w", err)
	}

	report := &domain.RunReport{
		RunSummary: domain.Summary{
			TotalPositions: p.Len(),
			OpenPositions:  len(open),
			RowsExported:   written,
		},
		Sources:   make([]domain.SourceSummary, 0),
		Positions: open,
	}
	if snapshot != nil {
		report.RunSummary.SnapshotDate = snapshot.Format(domain.DateLayout)
	}
	return report, nil
}

// filterPositional drops rows such as dividends that never reach the merger.
func filterPositional(transactions []domain.Transaction) []domain.Transaction {
	var kept []domain.Transaction
	for _, tx := range transactions {
		if tx.Type != domain.TransactionTypeOther {
			kept = append(kept, tx)
		}
	}
	return kept
}
