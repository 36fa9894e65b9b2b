package prices

import (
	"os"
	"path/filepath"
	"testing"
)

// P is a helper for test to create a price from a const.
func P(v float64) Price { return NewPrice(v) }

// R is a helper for test to create a record with a fixed timestamp.
func R(product, category string, price float64) Record {
	return Record{
		Product:   product,
		Category:  category,
		Price:     P(price),
		URL:       "https://shop.example/" + product,
		Timestamp: "2024-05-01T12:00:00Z",
	}
}

// writeStore writes content as a store file in a temporary folder and returns its path.
func writeStore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write store fixture: %v", err)
	}
	return path
}

// readFile returns the content of path as a string.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read %q: %v", path, err)
	}
	return string(data)
}
