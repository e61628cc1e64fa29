package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"transaction-tracker/internal/domain"
)

var splitColumns = []string{"symbol_namespace", "symbol", "event_date", "numerator", "denominator"}

// SplitCSVReader reads the stock split table, one event per row.
type SplitCSVReader struct{}

// NewSplitCSVReader creates a new reader instance.
func NewSplitCSVReader() *SplitCSVReader {
	return &SplitCSVReader{}
}

// GetStockSplits parses path. Events with a non-positive ratio are rejected.
func (r *SplitCSVReader) GetStockSplits(ctx context.Context, path string) ([]domain.StockSplit, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stock split file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	columns, err := indexColumns(header, splitColumns)
	if err != nil {
		return nil, fmt.Errorf("invalid header in %s: %w", path, err)
	}

	var splits []domain.StockSplit
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		eventDate, err := time.Parse(domain.DateLayout, record[columns["event_date"]])
		if err != nil {
			return nil, fmt.Errorf("could not parse event_date '%s': %w", record[columns["event_date"]], err)
		}
		numerator, err := strconv.Atoi(strings.TrimSpace(record[columns["numerator"]]))
		if err != nil {
			return nil, fmt.Errorf("could not parse numerator '%s': %w", record[columns["numerator"]], err)
		}
		denominator, err := strconv.Atoi(strings.TrimSpace(record[columns["denominator"]]))
		if err != nil {
			return nil, fmt.Errorf("could not parse denominator '%s': %w", record[columns["denominator"]], err)
		}

		s := domain.StockSplit{
			SymbolNamespace: record[columns["symbol_namespace"]],
			Symbol:          record[columns["symbol"]],
			EventDate:       domain.Day(eventDate),
			Numerator:       numerator,
			Denominator:     denominator,
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		splits = append(splits, s)
	}
	return splits, nil
}
