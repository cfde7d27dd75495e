package gateway

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"trade-netting/internal/domain"
)

// DefaultSheetName is the worksheet the blotter export writes trades to.
const DefaultSheetName = "Sheet1"

// SpreadsheetTradeRepository implements the TradeRepository interface for
// .xlsx workbooks and .csv files.
type SpreadsheetTradeRepository struct {
	sheetName string
}

// NewSpreadsheetTradeRepository creates a repository reading trades from sheetName
// of uploaded workbooks. An empty name selects DefaultSheetName.
func NewSpreadsheetTradeRepository(sheetName string) *SpreadsheetTradeRepository {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &SpreadsheetTradeRepository{sheetName: sheetName}
}

// GetTrades reads and parses the blotter file at path.
func (r *SpreadsheetTradeRepository) GetTrades(ctx context.Context, path string) ([]domain.TradeRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade file %s: %w", path, err)
	}
	defer file.Close()

	return r.DecodeTrades(ctx, file, filepath.Base(path))
}

// DecodeTrades parses an uploaded blotter. The format is chosen from the
// extension of filename.
func (r *SpreadsheetTradeRepository) DecodeTrades(ctx context.Context, src io.Reader, filename string) ([]domain.TradeRecord, error) {
	var (
		rows   [][]string
		format numberFormat
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(filename, src, r.sheetName)
	case ".csv":
		rows, format, err = readCSV(filename, src)
	default:
		return nil, &domain.DataFormatError{
			Source: filename,
			Err:    fmt.Errorf("unsupported file type %q, expected .xlsx or .csv", ext),
		}
	}
	if err != nil {
		return nil, err
	}
	return parseTradeTable(filename, rows, format)
}
