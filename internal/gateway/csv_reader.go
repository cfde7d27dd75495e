package gateway

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"trade-netting/internal/domain"
)

// readCSV reads every record of a CSV blotter. Exports from spreadsheet
// programs configured for a comma decimal separator use ';' between fields,
// so the delimiter is taken from the header line and decides how quantities
// are written.
func readCSV(source string, r io.Reader) ([][]string, numberFormat, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, dotDecimal, &domain.DataFormatError{Source: source, Err: fmt.Errorf("failed to read file: %w", err)}
	}

	format := dotDecimal
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	if reader.Comma == ';' {
		format = commaDecimal
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, format, &domain.DataFormatError{Source: source, Err: fmt.Errorf("error reading record: %w", err)}
		}
		rows = append(rows, record)
	}
	return rows, format, nil
}

func detectDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte{';'}) > bytes.Count(firstLine, []byte{','}) {
		return ';'
	}
	return ','
}
