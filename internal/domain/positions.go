package domain

import (
	"fmt"
	"time"
)

// Position is the net quantity and weighted-average cost basis held in one symbol.
// OpenPrice is only meaningful while Amount > 0.
type Position struct {
	Symbol    string    `json:"symbol"`
	Amount    float64   `json:"amount"`
	OpenPrice float64   `json:"open_price"`
	OpenDate  time.Time `json:"open_date"` // first record creating the entry
}

func (p Position) String() string {
	return fmt.Sprintf("symbol(%s) amount(%v) open_price(%v) open_date(%s)",
		p.Symbol, p.Amount, p.OpenPrice, p.OpenDate.Format(DateLayout))
}

// StockSplit is a split or merge event, numerator:denominator (2:1 doubles the share count).
type StockSplit struct {
	ID              int64     `json:"id,omitempty"`
	SymbolNamespace string    `json:"symbol_namespace"` // exchange, e.g. NASDAQ
	Symbol          string    `json:"symbol"`
	EventDate       time.Time `json:"event_date"`
	Numerator       int       `json:"numerator"`
	Denominator     int       `json:"denominator"`
}

// StockSplitKey identifies a split event regardless of where it is stored.
type StockSplitKey struct {
	SymbolNamespace string
	Symbol          string
	EventDate       string
	Numerator       int
	Denominator     int
}

// Key returns the identity used to de-duplicate split events. The storage ID is ignored.
func (s StockSplit) Key() StockSplitKey {
	return StockSplitKey{
		SymbolNamespace: s.SymbolNamespace,
		Symbol:          s.Symbol,
		EventDate:       s.EventDate.Format(DateLayout),
		Numerator:       s.Numerator,
		Denominator:     s.Denominator,
	}
}

// Validate rejects ratios that cannot be applied.
func (s StockSplit) Validate() error {
	if s.Numerator <= 0 || s.Denominator <= 0 {
		return fmt.Errorf("%w: %s %s %d:%d", ErrInvalidSplitRatio, s.SymbolNamespace, s.Symbol, s.Numerator, s.Denominator)
	}
	return nil
}

// Ratio is the share multiplier of the event. Call Validate first.
func (s StockSplit) Ratio() float64 {
	return float64(s.Numerator) / float64(s.Denominator)
}

func (s StockSplit) String() string {
	return fmt.Sprintf("event_date(%s) symbol(%s) numerator(%d) denominator(%d) symbol_namespace(%s)",
		s.EventDate.Format(DateLayout), s.Symbol, s.Numerator, s.Denominator, s.SymbolNamespace)
}
