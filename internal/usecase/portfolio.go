package usecase

import (
	"sort"

	"github.com/rs/zerolog"

	"transaction-tracker/internal/domain"
)

// Portfolio folds an ordered transaction sequence into per-symbol positions.
// Record must be called in merge order: there is no undo, and reordering
// changes the weighted-average cost basis.
type Portfolio struct {
	positions map[string]*domain.Position
	log       zerolog.Logger
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio(log zerolog.Logger) *Portfolio {
	return &Portfolio{
		positions: make(map[string]*domain.Position),
		log:       log.With().Str("component", "portfolio").Logger(),
	}
}

// Record applies one transaction. Types that do not move a position are ignored.
func (p *Portfolio) Record(tx domain.Transaction) {
	switch tx.Type {
	case domain.TransactionTypeBuy:
		p.recordBuy(tx)
	case domain.TransactionTypeSell:
		p.recordSell(tx)
	case domain.TransactionTypeStockSplitMergeInsertion:
		p.recordStockSplitMergeInsertion(tx)
	case domain.TransactionTypeStockSplitMergeDeletion:
		p.recordStockSplitMergeDeletion(tx)
	case domain.TransactionTypeInboundTransferFromEvent, domain.TransactionTypeOther:
		p.log.Debug().Str("symbol", tx.Symbol).Stringer("type", tx.Type).Msg("Transaction does not affect positions, ignored")
	default:
		p.log.Debug().Str("symbol", tx.Symbol).Int("type", int(tx.Type)).Msg("Unknown transaction type, ignored")
	}
}

// RecordAll applies transactions in the given order.
func (p *Portfolio) RecordAll(transactions []domain.Transaction) {
	for _, tx := range transactions {
		p.Record(tx)
	}
}

// open creates an entry from the transaction's own figures.
func (p *Portfolio) open(tx domain.Transaction) {
	p.positions[tx.Symbol] = &domain.Position{
		Symbol:    tx.Symbol,
		Amount:    tx.Amount,
		OpenPrice: tx.OpenPrice,
		OpenDate:  tx.OpenDate,
	}
}

func (p *Portfolio) recordBuy(tx domain.Transaction) {
	pos, ok := p.positions[tx.Symbol]
	if !ok {
		p.open(tx)
		return
	}

	prevAmount := pos.Amount
	pos.Amount += tx.Amount
	switch {
	case prevAmount == 0:
		pos.OpenPrice = tx.OpenPrice
	case prevAmount+tx.Amount != 0:
		pos.OpenPrice = (pos.OpenPrice*prevAmount + tx.OpenPrice*tx.Amount) / (prevAmount + tx.Amount)
	default:
		p.log.Warn().
			Str("symbol", tx.Symbol).
			Float64("open_price", pos.OpenPrice).
			Msg("Amount is zero after buy, open price left unchanged")
	}
}

// recordSell never touches the open price: the cost basis follows the remaining lot.
func (p *Portfolio) recordSell(tx domain.Transaction) {
	pos, ok := p.positions[tx.Symbol]
	if !ok {
		p.warnUnknownSymbol(tx)
		p.open(tx)
		return
	}
	pos.Amount -= tx.Amount
	p.warnIfNegative(pos)
}

// recordStockSplitMergeInsertion expects the record to carry the post-split price already.
func (p *Portfolio) recordStockSplitMergeInsertion(tx domain.Transaction) {
	pos, ok := p.positions[tx.Symbol]
	if !ok {
		p.open(tx)
		return
	}
	pos.Amount += tx.Amount
	pos.OpenPrice = tx.OpenPrice
}

func (p *Portfolio) recordStockSplitMergeDeletion(tx domain.Transaction) {
	pos, ok := p.positions[tx.Symbol]
	if !ok {
		p.warnUnknownSymbol(tx)
		p.open(tx)
		return
	}
	pos.Amount -= tx.Amount
	p.warnIfNegative(pos)
}

// TODO: confirm with the data owners whether a sell on an unseen symbol should
// open a negative position instead of copying the sell's own figures.
func (p *Portfolio) warnUnknownSymbol(tx domain.Transaction) {
	p.log.Warn().
		Str("symbol", tx.Symbol).
		Str("account", tx.Account).
		Stringer("type", tx.Type).
		Str("open_date", tx.OpenDate.Format(domain.DateLayout)).
		Msg("No prior position for symbol, opening one from the transaction itself")
}

func (p *Portfolio) warnIfNegative(pos *domain.Position) {
	if pos.Amount < 0 {
		p.log.Warn().Str("symbol", pos.Symbol).Float64("amount", pos.Amount).Msg("Position amount is negative")
	}
}

// Position returns a copy of the position held in symbol.
func (p *Portfolio) Position(symbol string) (domain.Position, bool) {
	pos, ok := p.positions[symbol]
	if !ok {
		return domain.Position{}, false
	}
	return *pos, true
}

// Positions returns every entry, including zeroed and negative ones, sorted by symbol.
func (p *Portfolio) Positions() []domain.Position {
	positions := make([]domain.Position, 0, len(p.positions))
	for _, pos := range p.positions {
		positions = append(positions, *pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })
	return positions
}

// OpenPositions returns the positions with a strictly positive amount, sorted by symbol.
func (p *Portfolio) OpenPositions() []domain.Position {
	var open []domain.Position
	for _, pos := range p.Positions() {
		if pos.Amount > 0 {
			open = append(open, pos)
		}
	}
	return open
}

// Symbols returns the held symbols in sorted order.
func (p *Portfolio) Symbols() []string {
	symbols := make([]string, 0, len(p.positions))
	for symbol := range p.positions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// scale multiplies the amount of symbol by ratio and divides its open price by it.
func (p *Portfolio) scale(symbol string, ratio float64) (domain.Position, bool) {
	pos, ok := p.positions[symbol]
	if !ok {
		return domain.Position{}, false
	}
	pos.Amount *= ratio
	pos.OpenPrice /= ratio
	return *pos, true
}

// Len returns the number of symbols with an entry.
func (p *Portfolio) Len() int { return len(p.positions) }
