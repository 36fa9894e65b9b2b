package prices

import (
	"errors"
	"time"
)

// Record is a single price observation.
//
// Records have no identity: their position in the store is the only way to
// refer to one of them.
type Record struct {
	Product   string
	Category  string // empty means uncategorized
	Price     Price
	URL       string // free text, never validated
	Timestamp string // RFC-3339 instant, opaque once created
}

// NewRecord creates a Record observed at 'at'.
func NewRecord(product, category string, price Price, url string, at time.Time) Record {
	return Record{
		Product:   product,
		Category:  category,
		Price:     price,
		URL:       url,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// Validate checks the invariants of a record created by a user.
func (r Record) Validate() error {
	if r.Product == "" {
		return &ValidationError{Field: "product", Value: r.Product, Err: errors.New("product name is required")}
	}
	if r.Price.Decimal().IsNegative() {
		return &ValidationError{Field: "price", Value: r.Price.String(), Err: errors.New("price must not be negative")}
	}
	return nil
}

// MarshalJSON writes the record with a stable field order, omitting an empty category.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("product", r.Product)
	w.Optional("category", r.Category)
	w.Append("price", r.Price)
	w.Append("url", r.URL)
	w.Append("timestamp", r.Timestamp)
	return w.MarshalJSON()
}
