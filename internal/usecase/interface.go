package usecase

import (
	"context"

	"transaction-tracker/internal/domain"
)

// TransactionSource reads one broker export already normalized to Transaction records.
// The usecase layer depends on these interfaces, not on concrete gateways.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type TransactionSource interface {
	GetTransactions(ctx context.Context, path, account, encoding string) ([]domain.Transaction, error)
}

// TransactionStore persists the merged transaction history.
type TransactionStore interface {
	// ReplaceAll swaps the stored history for transactions and returns the import id.
	ReplaceAll(ctx context.Context, transactions []domain.Transaction) (string, error)
	GetAll(ctx context.Context) ([]domain.Transaction, error)
}

// SplitRepository looks up split events for one symbol, ascending by event date.
type SplitRepository interface {
	GetSplits(ctx context.Context, symbol, symbolNamespace string) ([]domain.StockSplit, error)
}

// PortfolioExporter hands open positions to an external consumer.
type PortfolioExporter interface {
	ExportPositions(ctx context.Context, positions []domain.Position) (int, error)
}
