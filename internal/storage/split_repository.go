package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"transaction-tracker/internal/domain"
)

// SplitRepository reads and bootstraps the stock_splits table.
type SplitRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSplitRepository returns a repository over db. Migrate must have run on db.
func NewSplitRepository(db *sql.DB, log zerolog.Logger) *SplitRepository {
	return &SplitRepository{
		db:  db,
		log: log.With().Str("repo", "stock_splits").Logger(),
	}
}

const selectSplits = `SELECT id, symbol_namespace, symbol, event_date, numerator, denominator FROM stock_splits`

// GetSplits returns the events of symbol in symbolNamespace, oldest first.
func (r *SplitRepository) GetSplits(ctx context.Context, symbol, symbolNamespace string) ([]domain.StockSplit, error) {
	rows, err := r.db.QueryContext(ctx, selectSplits+`
		WHERE symbol = ? AND symbol_namespace = ?
		ORDER BY event_date ASC, id ASC
	`, symbol, symbolNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock splits: %w", err)
	}
	defer rows.Close()
	return scanSplits(rows)
}

// GetAll returns every stored event ordered by id.
func (r *SplitRepository) GetAll(ctx context.Context) ([]domain.StockSplit, error) {
	rows, err := r.db.QueryContext(ctx, selectSplits+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock splits: %w", err)
	}
	defer rows.Close()
	return scanSplits(rows)
}

// InsertMissing stores the events of splits that are not in the table yet and
// returns how many were inserted. Duplicates within splits are inserted once.
func (r *SplitRepository) InsertMissing(ctx context.Context, splits []domain.StockSplit) (int, error) {
	for _, s := range splits {
		if err := s.Validate(); err != nil {
			return 0, err
		}
	}

	existing, err := r.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[domain.StockSplitKey]struct{}, len(existing)+len(splits))
	for _, s := range existing {
		seen[s.Key()] = struct{}{}
	}

	inserted := 0
	err = WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		for _, s := range splits {
			key := s.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO stock_splits (symbol_namespace, symbol, event_date, numerator, denominator)
				VALUES (?, ?, ?, ?, ?)
			`, key.SymbolNamespace, key.Symbol, key.EventDate, key.Numerator, key.Denominator)
			if err != nil {
				return fmt.Errorf("failed to insert stock split %s: %w", s, err)
			}
			seen[key] = struct{}{}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.log.Info().Int("inserted", inserted).Int("skipped", len(splits)-inserted).Msg("Stock splits bootstrapped")
	return inserted, nil
}

func scanSplits(rows *sql.Rows) ([]domain.StockSplit, error) {
	var splits []domain.StockSplit
	for rows.Next() {
		var (
			s         domain.StockSplit
			eventDate string
		)
		if err := rows.Scan(&s.ID, &s.SymbolNamespace, &s.Symbol, &eventDate, &s.Numerator, &s.Denominator); err != nil {
			return nil, fmt.Errorf("failed to scan stock split: %w", err)
		}
		date, err := time.Parse(domain.DateLayout, eventDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event_date %q: %w", eventDate, err)
		}
		s.EventDate = date
		splits = append(splits, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock splits: %w", err)
	}
	return splits, nil
}
