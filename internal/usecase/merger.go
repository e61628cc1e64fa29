package usecase

import (
	"fmt"
	"time"

	"transaction-tracker/internal/domain"
)

// intraDayOrder is the order in which same-day transactions are emitted.
// Brokers report the date but not the time, so corporate-action rows go first
// and buys post before sells to avoid spurious negative positions on round trips.
var intraDayOrder = []domain.TransactionType{
	domain.TransactionTypeStockSplitMergeDeletion,
	domain.TransactionTypeStockSplitMergeInsertion,
	domain.TransactionTypeBuy,
	domain.TransactionTypeInboundTransferFromEvent,
	domain.TransactionTypeSell,
}

// MergeTransactions merges two date-sorted transaction lists into one list ordered
// by date and, within a day, by intraDayOrder. Records of the same type on the same
// day keep their relative input order, first before second.
//
// The walk steps one calendar day at a time from the earliest record up to today
// (or the latest record, if later), so its cost grows with the date span, not the
// record count.
func MergeTransactions(first, second []domain.Transaction, today time.Time) ([]domain.Transaction, error) {
	if i, ok := domain.IsSortedByDate(first); !ok {
		return nil, fmt.Errorf("%w: first source at index %d (%s)", domain.ErrUnsortedTransactions, i, first[i].OpenDate.Format(domain.DateLayout))
	}
	if i, ok := domain.IsSortedByDate(second); !ok {
		return nil, fmt.Errorf("%w: second source at index %d (%s)", domain.ErrUnsortedTransactions, i, second[i].OpenDate.Format(domain.DateLayout))
	}
	return mergeSorted(first, second, domain.Day(today)), nil
}

func mergeSorted(first, second []domain.Transaction, today time.Time) []domain.Transaction {
	if len(second) == 0 {
		return first
	}
	if len(first) == 0 {
		return second
	}
	if domain.Day(second[0].OpenDate).Before(domain.Day(first[0].OpenDate)) {
		return mergeSorted(second, first, today)
	}

	endingDate := today
	if last := domain.Day(first[len(first)-1].OpenDate); last.After(endingDate) {
		endingDate = last
	}
	if last := domain.Day(second[len(second)-1].OpenDate); last.After(endingDate) {
		endingDate = last
	}

	merged := make([]domain.Transaction, 0, len(first)+len(second))
	i, j := 0, 0
	var bucket []domain.Transaction
	for currentDate := domain.Day(first[0].OpenDate); !currentDate.After(endingDate); currentDate = currentDate.AddDate(0, 0, 1) {
		bucket = bucket[:0]
		for i < len(first) && !domain.Day(first[i].OpenDate).After(currentDate) {
			bucket = append(bucket, first[i])
			i++
		}
		for j < len(second) && !domain.Day(second[j].OpenDate).After(currentDate) {
			bucket = append(bucket, second[j])
			j++
		}
		merged = appendInIntraDayOrder(merged, bucket)
	}
	return merged
}

// appendInIntraDayOrder appends one day's bucket to dst, one type class at a time.
// Types outside intraDayOrder are not emitted.
func appendInIntraDayOrder(dst, bucket []domain.Transaction) []domain.Transaction {
	for _, txType := range intraDayOrder {
		for _, tx := range bucket {
			if tx.Type == txType {
				dst = append(dst, tx)
			}
		}
	}
	return dst
}

// MergeAll chain-merges every source into a running accumulator, in the given order.
func MergeAll(sources [][]domain.Transaction, today time.Time) ([]domain.Transaction, error) {
	var merged []domain.Transaction
	for n, source := range sources {
		var err error
		merged, err = MergeTransactions(merged, source, today)
		if err != nil {
			return nil, fmt.Errorf("could not merge source %d: %w", n, err)
		}
	}
	return merged, nil
}
