package deck

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Required deck-list columns, matched case-insensitively against the
// header row.
const (
	columnName    = "card name"
	columnSetHint = "set code / set name"

	columnQuantity   = "quantity"
	columnNumber     = "card number"
	columnScryfallID = "scryfall id"
)

// LoadCSV reads an ordered deck list from a CSV file. The header must
// include the card name and set hint columns; quantity, card number and
// scryfall id columns are optional. Rows with an empty card name are
// skipped. Any error here is an input error: the caller should abort
// before making external calls.
func LoadCSV(path string) ([]*Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck list: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseCSV(f)
}

// ParseCSV reads a deck list from CSV data.
func ParseCSV(r io.Reader) ([]*Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV appears to have no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	// Map normalized header names to column positions. The first cell may
	// carry a UTF-8 BOM from spreadsheet exports.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{columnName, columnSetHint} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV must include a '%s' column", required)
		}
	}

	field := func(record []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []*Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}

		name := field(record, columnName)
		if name == "" {
			continue
		}

		quantity := 1
		if raw := field(record, columnQuantity); raw != "" {
			quantity, err = strconv.Atoi(raw)
			if err != nil || quantity < 1 {
				return nil, fmt.Errorf("row %d: invalid Quantity '%s' for '%s'", line, raw, name)
			}
		}

		rows = append(rows, &Row{
			Name:            name,
			SetHint:         field(record, columnSetHint),
			Quantity:        quantity,
			CollectorNumber: field(record, columnNumber),
			ScryfallID:      field(record, columnScryfallID),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows found in CSV")
	}
	return rows, nil
}
