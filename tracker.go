package prices

import (
	"time"
)

// Tracker is the entry point used by interactive front-ends.
//
// Inputs are expected to be trimmed already; Tracker validates their content
// and delegates persistence to its Store.
type Tracker struct {
	store *Store
	now   func() time.Time
}

// NewTracker creates a Tracker over store.
func NewTracker(store *Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// WithClock returns t after replacing the clock used to stamp new records.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Store returns the underlying store.
func (t *Tracker) Store() *Store { return t.store }

// AddRecord validates the input, stamps it with the current time, and appends it to the store.
//
// priceText accepts ',' as decimal separator. Invalid input is a
// *ValidationError and leaves the store untouched.
func (t *Tracker) AddRecord(product, category, priceText, url string) (Record, error) {
	price, err := ParsePrice(priceText)
	if err != nil {
		return Record{}, err
	}
	r := NewRecord(product, category, price, url, t.now())
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	if err := t.store.Append(r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// ListAll returns every record in store order.
func (t *Tracker) ListAll() ([]Record, error) {
	return t.store.LoadAll()
}

// List returns records in category, or all of them for an empty category.
func (t *Tracker) List(category string) ([]Record, error) {
	records, err := t.store.LoadAll()
	if err != nil {
		return nil, err
	}
	return FilterByCategory(records, category), nil
}

// CheapestInCategory returns the cheapest record in category, or across all
// categories when category is empty. ok is false when there is no candidate.
func (t *Tracker) CheapestInCategory(category string) (r Record, ok bool, err error) {
	records, err := t.List(category)
	if err != nil {
		return Record{}, false, err
	}
	r, ok = Cheapest(records)
	return r, ok, nil
}

// ExportFiltered writes the records of category (all for "") to dest in the store format.
func (t *Tracker) ExportFiltered(dest, category string) error {
	return t.ExportFilteredAs(dest, category, FormatCSV)
}

// ExportFilteredAs is ExportFiltered with an explicit format.
func (t *Tracker) ExportFilteredAs(dest, category string, format Format) error {
	records, err := t.List(category)
	if err != nil {
		return err
	}
	return ExportFile(dest, records, format)
}

// DeleteAt removes the record at index, counted from 0 in store order.
func (t *Tracker) DeleteAt(index int) error {
	return t.store.DeleteAt(index)
}
