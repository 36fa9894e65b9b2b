package prices

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// This file contains the codec for the store file format.
//
// The store is a comma-separated file with a header line. Two row layouts
// coexist in the wild: the canonical 5-column layout, and the legacy 4-column
// layout written before categories existed. Both are read, only the canonical
// one is ever written. Reading a legacy file requires no migration step.

// ErrInvalidUTF8 reports a store cell that is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Header holds the column names of the canonical layout, in file order.
var Header = []string{"product", "category", "price", "url", "timestamp"}

// layout identifies the shape of a stored row.
type layout int

const (
	// canonicalLayout is product,category,price,url,timestamp.
	canonicalLayout layout = iota
	// legacyLayout is product,price,url,timestamp.
	legacyLayout
)

// layoutOf decides the layout of a row from its number of fields.
func layoutOf(fields []string) layout {
	if len(fields) >= len(Header) {
		return canonicalLayout
	}
	return legacyLayout
}

// field returns fields[i] or "" if the column is missing.
func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// EncodeRecords writes the header and all records in the canonical layout.
func EncodeRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for i, r := range records {
		row := []string{r.Product, r.Category, r.Price.String(), r.URL, r.Timestamp}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write record #%d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeRecords reads records from a store file.
//
// The header line is discarded without validation. Rows are read in the
// canonical or legacy layout depending on their number of fields. A price
// cell that is not a non-negative number decodes as zero and missing columns
// decode as empty strings. Quotes inside unquoted cells are kept as is.
// Text that is not valid UTF-8 is a *csv.ParseError wrapping ErrInvalidUTF8.
func DecodeRecords(r io.Reader) ([]Record, error) {
	return decodeRecords(r, nil)
}

// decodeRecords is DecodeRecords with a hook called for every coerced price cell.
func decodeRecords(r io.Reader, coerced func(line int, cell string)) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows of both layouts share a file.
	cr.LazyQuotes = true    // hand-edited cells like: Screen 27" wide

	header, err := cr.Read()
	if err == nil {
		err = checkUTF8(cr, header)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("cannot read header: %w", err)
	}

	records := make([]Record, 0)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil {
			err = checkUTF8(cr, fields)
		}
		if err != nil {
			return nil, err
		}

		var rec Record
		var cell string
		switch layoutOf(fields) {
		case canonicalLayout:
			cell = field(fields, 2)
			rec = Record{
				Product:   field(fields, 0),
				Category:  field(fields, 1),
				URL:       field(fields, 3),
				Timestamp: field(fields, 4),
			}
		case legacyLayout:
			cell = field(fields, 1)
			rec = Record{
				Product:   field(fields, 0),
				URL:       field(fields, 2),
				Timestamp: field(fields, 3),
			}
		}

		price, ok := decodePrice(cell)
		if !ok && coerced != nil {
			line, _ := cr.FieldPos(0)
			coerced(line, cell)
		}
		rec.Price = price
		records = append(records, rec)
	}
	return records, nil
}

// checkUTF8 returns a *csv.ParseError locating the first field of the last read
// row that is not valid UTF-8.
func checkUTF8(cr *csv.Reader, fields []string) error {
	for i, f := range fields {
		if !utf8.ValidString(f) {
			line, col := cr.FieldPos(i)
			return &csv.ParseError{StartLine: line, Line: line, Column: col, Err: ErrInvalidUTF8}
		}
	}
	return nil
}
