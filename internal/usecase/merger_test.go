package usecase_test

import (
	"testing"
	"time"

	"transaction-tracker/internal/domain"
	"transaction-tracker/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeToday = mustParseDate("2024-03-31")

func TestMergeTransactions(t *testing.T) {
	tests := []struct {
		name   string
		first  []domain.Transaction
		second []domain.Transaction
		want   []domain.Transaction
	}{
		{
			name:  "second empty returns first unchanged",
			first: []domain.Transaction{buy("A", "X", 10, 100, "2024-01-01")},
			want:  []domain.Transaction{buy("A", "X", 10, 100, "2024-01-01")},
		},
		{
			name:   "first empty returns second unchanged",
			second: []domain.Transaction{buy("B", "X", 10, 100, "2024-01-01")},
			want:   []domain.Transaction{buy("B", "X", 10, 100, "2024-01-01")},
		},
		{
			name: "interleaves by date",
			first: []domain.Transaction{
				buy("A", "X", 1, 10, "2024-01-01"),
				buy("A", "X", 1, 10, "2024-01-05"),
				sell("A", "X", 1, 12, "2024-03-01"),
			},
			second: []domain.Transaction{
				buy("B", "Y", 1, 10, "2024-02-01"),
			},
			want: []domain.Transaction{
				buy("A", "X", 1, 10, "2024-01-01"),
				buy("A", "X", 1, 10, "2024-01-05"),
				buy("B", "Y", 1, 10, "2024-02-01"),
				sell("A", "X", 1, 12, "2024-03-01"),
			},
		},
		{
			name: "same day follows intra-day priority",
			first: []domain.Transaction{
				sell("A", "X", 1, 10, "2024-01-02"),
				buy("A", "Y", 1, 10, "2024-01-02"),
			},
			second: []domain.Transaction{
				tx("B", "Z", domain.TransactionTypeInboundTransferFromEvent, 1, 0, "2024-01-02"),
				tx("B", "W", domain.TransactionTypeStockSplitMergeInsertion, 2, 5, "2024-01-02"),
				tx("B", "W", domain.TransactionTypeStockSplitMergeDeletion, 1, 10, "2024-01-02"),
			},
			want: []domain.Transaction{
				tx("B", "W", domain.TransactionTypeStockSplitMergeDeletion, 1, 10, "2024-01-02"),
				tx("B", "W", domain.TransactionTypeStockSplitMergeInsertion, 2, 5, "2024-01-02"),
				buy("A", "Y", 1, 10, "2024-01-02"),
				tx("B", "Z", domain.TransactionTypeInboundTransferFromEvent, 1, 0, "2024-01-02"),
				sell("A", "X", 1, 10, "2024-01-02"),
			},
		},
		{
			name: "same type on same day keeps first before second",
			first: []domain.Transaction{
				buy("A", "X", 10, 100, "2024-01-01"),
				buy("A", "X", 1, 101, "2024-01-01"),
			},
			second: []domain.Transaction{
				buy("B", "X", 5, 200, "2024-01-01"),
			},
			want: []domain.Transaction{
				buy("A", "X", 10, 100, "2024-01-01"),
				buy("A", "X", 1, 101, "2024-01-01"),
				buy("B", "X", 5, 200, "2024-01-01"),
			},
		},
		{
			name: "second starting earlier takes the first role",
			first: []domain.Transaction{
				buy("A", "X", 1, 10, "2024-01-02"),
			},
			second: []domain.Transaction{
				buy("B", "Y", 1, 10, "2024-01-01"),
				buy("B", "Z", 1, 10, "2024-01-02"),
			},
			want: []domain.Transaction{
				buy("B", "Y", 1, 10, "2024-01-01"),
				buy("B", "Z", 1, 10, "2024-01-02"),
				buy("A", "X", 1, 10, "2024-01-02"),
			},
		},
		{
			name: "records dated after today are kept",
			first: []domain.Transaction{
				buy("A", "X", 1, 10, "2024-03-30"),
			},
			second: []domain.Transaction{
				buy("B", "X", 1, 10, "2024-04-02"),
			},
			want: []domain.Transaction{
				buy("A", "X", 1, 10, "2024-03-30"),
				buy("B", "X", 1, 10, "2024-04-02"),
			},
		},
		{
			name: "other rows are not emitted",
			first: []domain.Transaction{
				buy("A", "X", 1, 10, "2024-01-01"),
				tx("A", "X", domain.TransactionTypeOther, 0, 3, "2024-01-02"),
			},
			second: []domain.Transaction{
				sell("B", "X", 1, 12, "2024-01-03"),
			},
			want: []domain.Transaction{
				buy("A", "X", 1, 10, "2024-01-01"),
				sell("B", "X", 1, 12, "2024-01-03"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.MergeTransactions(tt.first, tt.second, mergeToday)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeTransactions_UnsortedInput(t *testing.T) {
	descending := []domain.Transaction{
		buy("A", "X", 1, 10, "2024-02-01"),
		buy("A", "X", 1, 10, "2024-01-01"),
	}
	sorted := []domain.Transaction{
		buy("B", "Y", 1, 10, "2024-01-15"),
	}

	t.Run("unsorted first", func(t *testing.T) {
		got, err := usecase.MergeTransactions(descending, sorted, mergeToday)
		assert.ErrorIs(t, err, domain.ErrUnsortedTransactions)
		assert.Nil(t, got)
	})

	t.Run("unsorted second", func(t *testing.T) {
		got, err := usecase.MergeTransactions(sorted, descending, mergeToday)
		assert.ErrorIs(t, err, domain.ErrUnsortedTransactions)
		assert.Nil(t, got)
	})

	t.Run("unsorted with empty counterpart", func(t *testing.T) {
		got, err := usecase.MergeTransactions(descending, nil, mergeToday)
		assert.ErrorIs(t, err, domain.ErrUnsortedTransactions)
		assert.Nil(t, got)
	})
}

func TestMergeTransactions_CalendarDays(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	at := func(txType domain.TransactionType, symbol string, date time.Time) domain.Transaction {
		return domain.Transaction{Account: "A", Symbol: symbol, Type: txType, Amount: 1, OpenPrice: 10, OpenDate: date}
	}

	t.Run("day going backwards across time zones is unsorted", func(t *testing.T) {
		// 01:00 KST on Jan 2 is an earlier instant than 20:00 UTC on Jan 1
		first := []domain.Transaction{
			at(domain.TransactionTypeBuy, "X", time.Date(2024, 1, 2, 1, 0, 0, 0, kst)),
			at(domain.TransactionTypeBuy, "Y", time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)),
		}
		second := []domain.Transaction{buy("B", "Z", 1, 10, "2024-01-03")}

		got, err := usecase.MergeTransactions(first, second, mergeToday)
		assert.ErrorIs(t, err, domain.ErrUnsortedTransactions)
		assert.Nil(t, got)
	})

	t.Run("time of day within one day is ignored", func(t *testing.T) {
		first := []domain.Transaction{
			at(domain.TransactionTypeBuy, "X", time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)),
			at(domain.TransactionTypeSell, "X", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)),
		}
		second := []domain.Transaction{buy("B", "Z", 1, 10, "2024-01-03")}

		got, err := usecase.MergeTransactions(first, second, mergeToday)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, domain.TransactionTypeBuy, got[0].Type)
		assert.Equal(t, domain.TransactionTypeSell, got[1].Type)
		assert.Equal(t, "Z", got[2].Symbol)
	})
}

func TestMergeTransactions_Properties(t *testing.T) {
	a := []domain.Transaction{
		buy("A", "X", 10, 100, "2024-01-01"),
		sell("A", "X", 3, 110, "2024-01-03"),
		buy("A", "Y", 2, 50, "2024-01-03"),
		tx("A", "X", domain.TransactionTypeStockSplitMergeDeletion, 7, 110, "2024-02-10"),
		tx("A", "X", domain.TransactionTypeStockSplitMergeInsertion, 14, 55, "2024-02-10"),
	}
	b := []domain.Transaction{
		buy("B", "Z", 1, 20, "2023-12-30"),
		sell("B", "Z", 1, 25, "2024-01-03"),
		buy("B", "Z", 4, 21, "2024-01-03"),
		tx("B", "Q", domain.TransactionTypeInboundTransferFromEvent, 3, 0, "2024-02-10"),
	}

	ab, err := usecase.MergeTransactions(a, b, mergeToday)
	require.NoError(t, err)
	ba, err := usecase.MergeTransactions(b, a, mergeToday)
	require.NoError(t, err)

	t.Run("totality", func(t *testing.T) {
		assert.Len(t, ab, len(a)+len(b))
		assert.ElementsMatch(t, append(append([]domain.Transaction{}, a...), b...), ab)
	})

	t.Run("membership is commutative", func(t *testing.T) {
		assert.ElementsMatch(t, ab, ba)
	})

	t.Run("ordered by date then priority", func(t *testing.T) {
		priority := map[domain.TransactionType]int{
			domain.TransactionTypeStockSplitMergeDeletion:  0,
			domain.TransactionTypeStockSplitMergeInsertion: 1,
			domain.TransactionTypeBuy:                      2,
			domain.TransactionTypeInboundTransferFromEvent: 3,
			domain.TransactionTypeSell:                     4,
		}
		for i := 1; i < len(ab); i++ {
			prev, cur := ab[i-1], ab[i]
			require.False(t, cur.OpenDate.Before(prev.OpenDate), "index %d goes back in time", i)
			if cur.OpenDate.Equal(prev.OpenDate) {
				assert.LessOrEqual(t, priority[prev.Type], priority[cur.Type], "index %d breaks intra-day order", i)
			}
		}
	})
}

func TestMergeAll(t *testing.T) {
	sources := [][]domain.Transaction{
		{buy("kiwoom", "X", 1, 10, "2024-01-02")},
		{sell("shinhan", "X", 1, 12, "2024-01-02")},
		{buy("meritz", "Y", 1, 5, "2024-01-01")},
		nil,
	}

	got, err := usecase.MergeAll(sources, mergeToday)
	require.NoError(t, err)
	assert.Equal(t, []domain.Transaction{
		buy("meritz", "Y", 1, 5, "2024-01-01"),
		buy("kiwoom", "X", 1, 10, "2024-01-02"),
		sell("shinhan", "X", 1, 12, "2024-01-02"),
	}, got)

	t.Run("unsorted source aborts", func(t *testing.T) {
		_, err := usecase.MergeAll([][]domain.Transaction{
			sources[0],
			{buy("B", "X", 1, 1, "2024-02-01"), buy("B", "X", 1, 1, "2024-01-01")},
		}, mergeToday)
		assert.ErrorIs(t, err, domain.ErrUnsortedTransactions)
	})

	t.Run("no sources", func(t *testing.T) {
		got, err := usecase.MergeAll(nil, mergeToday)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func BenchmarkMergeTransactions(b *testing.B) {
	var first, second []domain.Transaction
	start := mustParseDate("2020-01-01")
	for i := 0; i < 1000; i++ {
		day := start.AddDate(0, 0, i)
		first = append(first, domain.Transaction{Symbol: "X", Type: domain.TransactionTypeBuy, Amount: 1, OpenPrice: 10, OpenDate: day})
		second = append(second, domain.Transaction{Symbol: "Y", Type: domain.TransactionTypeSell, Amount: 1, OpenPrice: 10, OpenDate: day})
	}
	today := start.AddDate(0, 0, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := usecase.MergeTransactions(first, second, today); err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}

// Helper functions

func tx(account, symbol string, txType domain.TransactionType, amount, price float64, date string) domain.Transaction {
	return domain.Transaction{
		Account:   account,
		Symbol:    symbol,
		Type:      txType,
		Amount:    amount,
		OpenPrice: price,
		OpenDate:  mustParseDate(date),
	}
}

func buy(account, symbol string, amount, price float64, date string) domain.Transaction {
	return tx(account, symbol, domain.TransactionTypeBuy, amount, price, date)
}

func sell(account, symbol string, amount, price float64, date string) domain.Transaction {
	return tx(account, symbol, domain.TransactionTypeSell, amount, price, date)
}

func mustParseDate(dateStr string) time.Time {
	t, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}
