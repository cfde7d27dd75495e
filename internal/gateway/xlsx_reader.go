package gateway

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"trade-netting/internal/domain"
)

// readXLSX returns the rows of the named sheet, or of the first sheet when the
// workbook has no sheet with that name. Cells are read raw so that numeric
// formats (thousand separators, fixed decimals) do not alter quantities.
func readXLSX(source string, r io.Reader, sheetName string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domain.DataFormatError{Source: source, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList(), sheetName)
	if sheet == "" {
		return nil, &domain.DataFormatError{Source: source, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &domain.DataFormatError{Source: source, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}
	return rows, nil
}

func pickSheet(sheets []string, preferred string) string {
	for _, s := range sheets {
		if s == preferred {
			return s
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return ""
}
