package usecase

import (
	"context"
	"testing"
	"time"

	"transaction-tracker/internal/domain"
	mock_usecase "transaction-tracker/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolio_scale_MissingSymbol(t *testing.T) {
	p := NewPortfolio(zerolog.Nop())

	pos, ok := p.scale("AAPL", 2)
	assert.False(t, ok)
	assert.Zero(t, pos)
	assert.Zero(t, p.Len(), "scaling does not open an entry")
}

func TestSplitAdjuster_Apply_SymbolGoneBeforeScaling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := func(s string) time.Time {
		d, err := time.Parse(domain.DateLayout, s)
		require.NoError(t, err)
		return d
	}

	p := NewPortfolio(zerolog.Nop())
	p.Record(domain.Transaction{Account: "A", Symbol: "AAPL", Type: domain.TransactionTypeBuy, Amount: 10, OpenPrice: 400, OpenDate: date("2024-01-02")})
	p.Record(domain.Transaction{Account: "A", Symbol: "MSFT", Type: domain.TransactionTypeBuy, Amount: 1, OpenPrice: 300, OpenDate: date("2024-01-02")})

	repo := mock_usecase.NewMockSplitRepository(ctrl)
	repo.EXPECT().GetSplits(gomock.Any(), "AAPL", DefaultSplitNamespace).DoAndReturn(
		func(context.Context, string, string) ([]domain.StockSplit, error) {
			delete(p.positions, "AAPL")
			return []domain.StockSplit{
				{SymbolNamespace: DefaultSplitNamespace, Symbol: "AAPL", EventDate: date("2024-03-01"), Numerator: 2, Denominator: 1},
			}, nil
		})
	repo.EXPECT().GetSplits(gomock.Any(), "MSFT", DefaultSplitNamespace).Return([]domain.StockSplit{
		{SymbolNamespace: DefaultSplitNamespace, Symbol: "MSFT", EventDate: date("2024-03-01"), Numerator: 3, Denominator: 1},
	}, nil)

	err := NewSplitAdjuster(repo, DefaultSplitNamespace, zerolog.Nop()).Apply(context.Background(), date("2024-02-15"), p)
	require.NoError(t, err)

	_, ok := p.Position("AAPL")
	assert.False(t, ok)
	msft, ok := p.Position("MSFT")
	require.True(t, ok)
	assert.Equal(t, 3.0, msft.Amount)
	assert.Equal(t, 100.0, msft.OpenPrice)
}
