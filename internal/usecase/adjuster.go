package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"transaction-tracker/internal/domain"
)

// DefaultSplitNamespace is the exchange split events are looked up in.
const DefaultSplitNamespace = "NASDAQ"

// SplitAdjuster backs a portfolio out to pre-split terms for a historical snapshot.
// The merged history already reflects every split as of today, so only splits
// dated after the snapshot need to be undone.
type SplitAdjuster struct {
	repo      SplitRepository
	namespace string
	log       zerolog.Logger
}

// NewSplitAdjuster creates an adjuster reading split events of one namespace.
func NewSplitAdjuster(repo SplitRepository, namespace string, log zerolog.Logger) *SplitAdjuster {
	if namespace == "" {
		namespace = DefaultSplitNamespace
	}
	return &SplitAdjuster{
		repo:      repo,
		namespace: namespace,
		log:       log.With().Str("component", "split_adjuster").Logger(),
	}
}

// Apply rescales every position of p that had splits after snapshotDate.
// Several qualifying splits compound in event-date order.
func (a *SplitAdjuster) Apply(ctx context.Context, snapshotDate time.Time, p *Portfolio) error {
	snapshotDate = domain.Day(snapshotDate)
	for _, symbol := range p.Symbols() {
		splits, err := a.repo.GetSplits(ctx, symbol, a.namespace)
		if err != nil {
			return fmt.Errorf("could not get stock splits for %s: %w", symbol, err)
		}
		for _, s := range splits {
			if !domain.Day(s.EventDate).After(snapshotDate) {
				continue
			}
			if err := s.Validate(); err != nil {
				a.log.Warn().Err(err).Msg("Skipping stock split")
				continue
			}
			pos, ok := p.scale(symbol, s.Ratio())
			if !ok {
				a.log.Warn().Str("symbol", symbol).Msg("Symbol left the portfolio, skipping its stock splits")
				break
			}
			a.log.Info().
				Str("symbol", symbol).
				Str("event_date", s.EventDate.Format(domain.DateLayout)).
				Int("numerator", s.Numerator).
				Int("denominator", s.Denominator).
				Float64("amount", pos.Amount).
				Float64("open_price", pos.OpenPrice).
				Msg("Found stock split")
		}
	}
	return nil
}
