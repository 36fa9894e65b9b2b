package prices

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeJSONL(t *testing.T) {
	records := []Record{
		R("Milk", "dairy", 1.2),
		R("Bread", "", 2),
	}

	var sb strings.Builder
	if err := EncodeJSONL(&sb, records); err != nil {
		t.Fatalf("EncodeJSONL() unexpected error: %v", err)
	}

	want := `{"product":"Milk","category":"dairy","price":1.20,"url":"https://shop.example/Milk","timestamp":"2024-05-01T12:00:00Z"}
{"product":"Bread","price":2.00,"url":"https://shop.example/Bread","timestamp":"2024-05-01T12:00:00Z"}
`
	if got := sb.String(); got != want {
		t.Errorf("EncodeJSONL() got \n%s\n want \n%s", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"csv", "jsonl"} {
		if f, err := ParseFormat(s); err != nil || string(f) != s {
			t.Errorf("ParseFormat(%q) = %q, %v", s, f, err)
		}
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Error("ParseFormat(xlsx) expected an error")
	}
}

func TestTracker_ExportFilteredAsJSONL(t *testing.T) {
	tr := newTestTracker(t)
	if _, err := tr.AddRecord("Milk", "dairy", "1.2", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddRecord("Chips", "snacks", "2", ""); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "export.jsonl")
	if err := tr.ExportFilteredAs(dest, "dairy", FormatJSONL); err != nil {
		t.Fatalf("ExportFilteredAs() unexpected error: %v", err)
	}
	want := `{"product":"Milk","category":"dairy","price":1.20,"url":"","timestamp":"2024-05-01T12:00:00Z"}` + "\n"
	if got := readFile(t, dest); got != want {
		t.Errorf("ExportFilteredAs() got %q, want %q", got, want)
	}
}
