package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"transaction-tracker/internal/domain"
)

// TransactionRepository stores the merged history in simple_transactions.
// Insertion order is the merge order, so rows are read back by transaction_id.
type TransactionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTransactionRepository returns a repository over db. Migrate must have run on db.
func NewTransactionRepository(db *sql.DB, log zerolog.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:  db,
		log: log.With().Str("repo", "transactions").Logger(),
	}
}

// ReplaceAll deletes the stored history and inserts transactions in one SQL
// transaction. It returns the import id the new rows are tagged with.
func (r *TransactionRepository) ReplaceAll(ctx context.Context, transactions []domain.Transaction) (string, error) {
	importID := uuid.NewString()

	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM simple_transactions`); err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO simple_transactions
				(import_id, account, symbol, transaction_type, amount, open_price, commission, open_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, t := range transactions {
			_, err := stmt.ExecContext(ctx,
				importID,
				t.Account,
				t.Symbol,
				t.Type.String(),
				t.Amount,
				t.OpenPrice,
				t.Commission,
				t.OpenDate.Format(domain.DateLayout),
			)
			if err != nil {
				return fmt.Errorf("failed to insert transaction %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	r.log.Info().Str("import_id", importID).Int("rows", len(transactions)).Msg("Transactions replaced")
	return importID, nil
}

const selectTransactions = `SELECT account, symbol, transaction_type, amount, open_price, commission, open_date FROM simple_transactions`

// GetAll returns the stored history in merge order.
func (r *TransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectTransactions+` ORDER BY transaction_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// GetBySymbol returns the stored transactions of symbol in merge order.
func (r *TransactionRepository) GetBySymbol(ctx context.Context, symbol string) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectTransactions+`
		WHERE symbol = ?
		ORDER BY transaction_id ASC
	`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of %s: %w", symbol, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		var (
			t        domain.Transaction
			typeName string
			openDate string
			err      error
		)
		if err = rows.Scan(&t.Account, &t.Symbol, &typeName, &t.Amount, &t.OpenPrice, &t.Commission, &openDate); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if t.Type, err = domain.ParseTransactionType(typeName); err != nil {
			return nil, err
		}
		if t.OpenDate, err = time.Parse(domain.DateLayout, openDate); err != nil {
			return nil, fmt.Errorf("failed to parse open_date %q: %w", openDate, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// LatestImportID returns the import id of the stored history, or "" when empty.
func (r *TransactionRepository) LatestImportID(ctx context.Context) (string, error) {
	var importID string
	err := r.db.QueryRowContext(ctx, `
		SELECT import_id FROM simple_transactions ORDER BY transaction_id DESC LIMIT 1
	`).Scan(&importID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query import id: %w", err)
	}
	return importID, nil
}
