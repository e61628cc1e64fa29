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

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"transaction-tracker/internal/domain"
)

// Supported source file encodings.
const (
	EncodingUTF8  = "utf-8"
	EncodingEUCKR = "euc-kr"
)

var transactionColumns = []string{"symbol", "transaction_type", "amount", "open_price", "commission", "open_date"}

// CSVTransactionRepository reads broker exports that were normalized to one CSV layout:
// a header row naming symbol, transaction_type, amount, open_price, commission and
// open_date, plus an optional account column.
type CSVTransactionRepository struct {
	log zerolog.Logger
}

// NewCSVTransactionRepository creates a new repository instance.
func NewCSVTransactionRepository(log zerolog.Logger) *CSVTransactionRepository {
	return &CSVTransactionRepository{
		log: log.With().Str("gateway", "csv_transactions").Logger(),
	}
}

// GetTransactions reads and parses one normalized export. Rows without an account
// value are attributed to account. Rows of unknown type are kept as OTHER and
// logged with their file position.
func (r *CSVTransactionRepository) GetTransactions(ctx context.Context, path, account, encoding string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction file %s: %w", path, err)
	}
	defer file.Close()

	src, err := decodeReader(file, encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	columns, err := indexColumns(header, transactionColumns)
	if err != nil {
		return nil, fmt.Errorf("invalid header in %s: %w", path, err)
	}
	accountColumn, hasAccount := columns["account"]

	var transactions []domain.Transaction
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

		line, _ := reader.FieldPos(0)
		tx, err := r.parseTransaction(record, columns, path, line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		tx.Account = account
		if hasAccount && record[accountColumn] != "" {
			tx.Account = record[accountColumn]
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (r *CSVTransactionRepository) parseTransaction(record []string, columns map[string]int, path string, line int) (domain.Transaction, error) {
	rawType := record[columns["transaction_type"]]
	txType, err := domain.ParseTransactionType(strings.ToUpper(strings.TrimSpace(rawType)))
	if err != nil {
		// Dividends and similar rows are informational; they are filtered before merging.
		r.log.Warn().
			Str("file", path).
			Int("line", line).
			Str("symbol", record[columns["symbol"]]).
			Str("transaction_type", rawType).
			Msg("Unknown transaction type, keeping row as OTHER")
	}

	amount, err := parseNonNegative(record[columns["amount"]], "amount")
	if err != nil {
		return domain.Transaction{}, err
	}
	openPrice, err := parseNonNegative(record[columns["open_price"]], "open_price")
	if err != nil {
		return domain.Transaction{}, err
	}
	commission, err := decimal.NewFromString(orZero(record[columns["commission"]]))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("could not parse commission '%s': %w", record[columns["commission"]], err)
	}
	if commission.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("commission must not be negative, got %s", commission)
	}

	date, err := time.Parse(domain.DateLayout, record[columns["open_date"]])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("could not parse open_date '%s': %w", record[columns["open_date"]], err)
	}

	return domain.Transaction{
		Symbol:     record[columns["symbol"]],
		Type:       txType,
		Amount:     amount,
		OpenPrice:  openPrice,
		Commission: commission.Round(2).InexactFloat64(),
		OpenDate:   domain.Day(date),
	}, nil
}

func parseNonNegative(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s '%s': %w", field, s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %v", field, v)
	}
	return v, nil
}

func orZero(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return "0"
	}
	return s
}

// indexColumns maps lower-cased header names to their positions and checks required ones.
func indexColumns(header []string, required []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return columns, nil
}

// decodeReader wraps r so that it yields UTF-8.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingEUCKR, "euckr", "cp949":
		return transform.NewReader(r, korean.EUCKR.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}
