package gateway

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"trade-netting/internal/domain"
)

// Column headings of the broker's blotter export.
const (
	ColumnOperation = "Operación - Nombre"
	ColumnSymbol    = "Instrumento - Símbolo"
	ColumnQuantity  = "Cantidad"
)

// RequiredColumns lists the headings every uploaded table must carry.
var RequiredColumns = []string{ColumnOperation, ColumnSymbol, ColumnQuantity}

var (
	errNoHeader        = errors.New("no header row found")
	errThousandsGroups = errors.New("'.' separates thousands and must be followed by three digits")
)

// numberFormat is the decimal convention of the quantity cells of a table.
type numberFormat int

const (
	dotDecimal   numberFormat = iota // 1200.5
	commaDecimal                     // 1.200,5
)

// parseTradeTable maps a header row plus data rows onto trade records. Columns
// are located by heading, so extra columns and any column order are accepted.
// Rows with no content are skipped.
func parseTradeTable(source string, rows [][]string, format numberFormat) ([]domain.TradeRecord, error) {
	header := -1
	for i, row := range rows {
		if !isBlank(row) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, &domain.DataFormatError{Source: source, Err: errNoHeader}
	}

	index := make(map[string]int, len(rows[header]))
	for i, heading := range rows[header] {
		name := strings.TrimSpace(strings.TrimPrefix(heading, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{
			Source:   source,
			Missing:  missing,
			Required: append([]string(nil), RequiredColumns...),
		}
	}

	var records []domain.TradeRecord
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		raw := cell(row, index[ColumnQuantity])
		quantity, err := parseQuantity(raw, format)
		if err != nil {
			return nil, &domain.DataFormatError{
				Source: source,
				Row:    i + 1,
				Column: ColumnQuantity,
				Value:  raw,
				Err:    err,
			}
		}
		records = append(records, domain.TradeRecord{
			OperationName: strings.TrimSpace(cell(row, index[ColumnOperation])),
			Symbol:        cell(row, index[ColumnSymbol]),
			Quantity:      quantity,
		})
	}
	return records, nil
}

func parseQuantity(raw string, format numberFormat) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if format == commaDecimal {
		normalized, err := fromCommaDecimal(s)
		if err != nil {
			return decimal.Decimal{}, err
		}
		s = normalized
	}
	return decimal.NewFromString(s)
}

// fromCommaDecimal rewrites "1.200,5" as "1200.5". A '.' is only accepted
// between groups of three digits, so "1.5" is rejected instead of read as 15.
func fromCommaDecimal(s string) (string, error) {
	whole, frac, hasFrac := strings.Cut(s, ",")
	if strings.Contains(whole, ".") {
		groups := strings.Split(whole, ".")
		if lead := strings.TrimLeft(groups[0], "+-"); lead == "" || len(lead) > 3 {
			return "", errThousandsGroups
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return "", errThousandsGroups
			}
		}
		whole = strings.Join(groups, "")
	}
	if !hasFrac {
		return whole, nil
	}
	return whole + "." + frac, nil
}

// cell tolerates ragged rows, which spreadsheets produce when trailing cells are empty.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
