package prices

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// this file contains functions to handle the export formats.
// They remain human readable, single file, and never touch the store.

// Format is an export file format.
type Format string

const (
	// FormatCSV is the store format itself.
	FormatCSV Format = "csv"
	// FormatJSONL writes one JSON object per record.
	FormatJSONL Format = "jsonl"
)

// ParseFormat parses an export format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSONL:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format: %q", s)
	}
}

// EncodeJSONL writes records to 'w' in the JSONL export format.
//
// Each line is a JSON object with the properties product, category, price,
// url and timestamp, in that order. The category is omitted when empty and the
// price is a number with two fraction digits.
func EncodeJSONL(w io.Writer, records []Record) error {
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("cannot marshal record #%d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write JSONL format: %w", err)
		}
	}
	return nil
}

// Export writes records to 'w' in the given format.
func Export(w io.Writer, records []Record, format Format) error {
	switch format {
	case FormatCSV, "":
		return EncodeRecords(w, records)
	case FormatJSONL:
		return EncodeJSONL(w, records)
	default:
		return fmt.Errorf("unknown export format: %q", format)
	}
}

// ExportFile creates or truncates path and exports records to it.
// Any failure is a *WriteError.
func ExportFile(path string, records []Record, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := Export(f, records, format); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
