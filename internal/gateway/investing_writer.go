package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"transaction-tracker/internal/domain"
)

var investingHeader = []string{"Open Date", "Symbol/ISIN", "Type", "Amount", "Open Price", "Commission"}

// InvestingWriter exports open positions as an investing.com portfolio import file.
type InvestingWriter struct {
	path string
	log  zerolog.Logger
}

// NewInvestingWriter creates a writer targeting path.
func NewInvestingWriter(path string, log zerolog.Logger) *InvestingWriter {
	return &InvestingWriter{
		path: path,
		log:  log.With().Str("exporter", "investing.com").Logger(),
	}
}

// ExportPositions overwrites the target file with one Buy row per open position.
func (w *InvestingWriter) ExportPositions(ctx context.Context, positions []domain.Position) (int, error) {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(w.path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", w.path, err)
	}

	written, err := WriteInvestingPortfolio(file, positions)
	if err != nil {
		file.Close()
		return 0, fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", w.path, err)
	}

	w.log.Info().Str("path", w.path).Int("rows", written).Msg("Portfolio exported")
	return written, nil
}

// WriteInvestingPortfolio writes the CSV to out. Positions that are not strictly
// positive are skipped.
func WriteInvestingPortfolio(out io.Writer, positions []domain.Position) (int, error) {
	writer := csv.NewWriter(out)
	writer.UseCRLF = true // excel dialect
	if err := writer.Write(investingHeader); err != nil {
		return 0, err
	}

	written := 0
	for _, p := range positions {
		if p.Amount <= 0 {
			continue
		}
		row := []string{
			p.OpenDate.Format("01/02/2006"),
			p.Symbol,
			"Buy",
			decimal.NewFromFloat(p.Amount).String(),
			decimal.NewFromFloat(p.OpenPrice).StringFixed(4),
			decimal.Zero.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return written, err
		}
		written++
	}

	writer.Flush()
	return written, writer.Error()
}

// TextPrinter prints transactions one per line.
type TextPrinter struct {
	out io.Writer
}

// NewTextPrinter returns a printer writing to out.
func NewTextPrinter(out io.Writer) *TextPrinter {
	return &TextPrinter{out: out}
}

// PrintAll writes each transaction on its own line, stopping at the first write error.
func (p *TextPrinter) PrintAll(transactions []domain.Transaction) error {
	for _, tx := range transactions {
		if _, err := fmt.Fprintln(p.out, tx); err != nil {
			return err
		}
	}
	return nil
}
