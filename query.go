package prices

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// FilterByCategory returns the records whose category matches, ignoring ASCII case.
// An empty category matches everything and returns records unchanged.
func FilterByCategory(records []Record, category string) []Record {
	if category == "" {
		return records
	}
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if equalFoldASCII(r.Category, category) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// equalFoldASCII reports whether a and b are equal under ASCII case folding.
// Non-ASCII letters must match exactly.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// Cheapest returns the record with the lowest price, the first one on ties.
// ok is false when records is empty.
func Cheapest(records []Record) (cheapest Record, ok bool) {
	for i, r := range records {
		if i == 0 || r.Price.LessThan(cheapest.Price) {
			cheapest = r
		}
	}
	return cheapest, len(records) > 0
}

// Select evaluates a JSONPath expression against the records.
//
// Records are seen as a JSON array of objects with the properties product,
// category, price (a number), url and timestamp. For instance
// `$[?(@.price < 2)].product` lists the products cheaper than 2.
func Select(records []Record, expr string) (any, error) {
	doc := make([]any, 0, len(records))
	for _, r := range records {
		doc = append(doc, map[string]any{
			"product":   r.Product,
			"category":  r.Category,
			"price":     r.Price.InexactFloat64(),
			"url":       r.URL,
			"timestamp": r.Timestamp,
		})
	}
	val, err := jsonpath.Get(strings.TrimSpace(expr), doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", expr, err)
	}
	return val, nil
}
