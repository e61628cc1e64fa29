package domain

import "errors"

var (
	// ErrUnsortedTransactions marks a source sequence that is not ascending by date.
	// It is fatal for a run: merging or folding past it would corrupt the cost basis.
	ErrUnsortedTransactions = errors.New("transactions are not sorted by open date")

	// ErrUnknownTransactionType is returned when a stored or parsed type name matches no TransactionType.
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrInvalidSplitRatio marks a split event with a zero numerator or denominator.
	ErrInvalidSplitRatio = errors.New("invalid stock split ratio")
)
