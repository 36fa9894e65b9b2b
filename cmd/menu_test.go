package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/prices"
	"github.com/etnz/prices/renderer"
)

// runShell runs an interactive session over a fresh store fed with input lines.
func runShell(t *testing.T, storePath string, input ...string) string {
	t.Helper()
	var out strings.Builder
	tracker := prices.NewTracker(prices.NewStore(storePath))
	sh := newShell(strings.NewReader(strings.Join(input, "\n")), &out, tracker, renderer.Options{})
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run() unexpected error: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func TestShell_AddListExit(t *testing.T) {
	store := filepath.Join(t.TempDir(), "prices.csv")
	out := runShell(t, store,
		"1", "  Chips  ", "snacks", "abc", "1,5", "https://shop.example/chips",
		"2",
		"6",
	)

	for _, want := range []string{
		"Invalid price, use a number like 12.50 or 12,50.",
		"Saved.",
		"| 1 | Chips | snacks | 1.50 | https://shop.example/chips |",
		"Goodbye.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("session output should contain %q, got:\n%s", want, out)
		}
	}

	records, err := prices.NewStore(store).LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Product != "Chips" || records[0].Price.String() != "1.50" {
		t.Errorf("store content = %+v, want a single Chips record at 1.50", records)
	}
}

func TestShell_EmptyProductIsAskedAgain(t *testing.T) {
	store := filepath.Join(t.TempDir(), "prices.csv")
	out := runShell(t, store, "1", "", "Milk", "", "2", "", "6")
	if !strings.Contains(out, "A product name is required.") {
		t.Errorf("session output should ask the product again, got:\n%s", out)
	}
	if !strings.Contains(out, "Saved.") {
		t.Errorf("session output should save the record, got:\n%s", out)
	}
}

func TestShell_Cheapest(t *testing.T) {
	store := filepath.Join(t.TempDir(), "prices.csv")

	out := runShell(t, store, "3", "6")
	if !strings.Contains(out, "No entries.") {
		t.Errorf("cheapest on an empty store should report no entries, got:\n%s", out)
	}

	tracker := prices.NewTracker(prices.NewStore(store))
	for _, in := range [][3]string{{"Chips", "snacks", "2"}, {"Nuts", "SNACKS", "1"}, {"Milk", "dairy", "0.5"}} {
		if _, err := tracker.AddRecord(in[0], in[1], in[2], ""); err != nil {
			t.Fatal(err)
		}
	}

	out = runShell(t, store, "3", "Snacks", "3", "bakery", "6")
	if !strings.Contains(out, "| 1 | Nuts | SNACKS | 1.00 |") {
		t.Errorf("cheapest snacks should be Nuts, got:\n%s", out)
	}
	if !strings.Contains(out, "No entries for that category.") {
		t.Errorf("cheapest bakery should report no entries for that category, got:\n%s", out)
	}
}

func TestShell_Export(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "prices.csv")
	tracker := prices.NewTracker(prices.NewStore(store))
	if _, err := tracker.AddRecord("Chips", "snacks", "2", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := tracker.AddRecord("Milk", "dairy", "1", ""); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(dir, "out.csv")

	out := runShell(t, store, "4", "n", "4", "yes", dest, "DAIRY", "6")
	if !strings.Contains(out, "Export canceled.") {
		t.Errorf("a 'n' answer should cancel the export, got:\n%s", out)
	}
	if !strings.Contains(out, "Exported to "+dest) {
		t.Errorf("export should be reported, got:\n%s", out)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "Milk,dairy,1.00,,") {
		t.Errorf("export content = %q, want the header and the Milk record", data)
	}
}

func TestShell_ExportIsAlwaysCSV(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "prices.csv")
	if _, err := prices.NewTracker(prices.NewStore(store)).AddRecord("Milk", "dairy", "1", ""); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"out.db", "out.jsonl"} {
		dest := filepath.Join(dir, name)
		runShell(t, store, "4", "y", dest, "", "6")
		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "product,category,price,url,timestamp\nMilk,dairy,1.00,,") {
			t.Errorf("menu export to %s = %q, want the CSV format", name, data)
		}
	}
}

func TestShell_Delete(t *testing.T) {
	store := filepath.Join(t.TempDir(), "prices.csv")
	tracker := prices.NewTracker(prices.NewStore(store))
	for _, p := range []string{"A", "B", "C"} {
		if _, err := tracker.AddRecord(p, "", "1", ""); err != nil {
			t.Fatal(err)
		}
	}

	out := runShell(t, store,
		"5", "", // cancel
		"5", "x", // invalid
		"5", "4", // out of range
		"5", "2", "N", // not confirmed
		"5", "2", "y", // deleted
		"6",
	)
	for _, want := range []string{"1. A (1.00)", "Canceled.", "Invalid number.", "Out of range.", "Delete 'B' (1.00)? (y/N): ", "Deleted."} {
		if !strings.Contains(out, want) {
			t.Errorf("session output should contain %q, got:\n%s", want, out)
		}
	}

	records, err := tracker.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].Product != "A" || records[1].Product != "C" {
		t.Errorf("store after delete = %+v, want [A C]", records)
	}
}

func TestShell_InvalidOptionAndEOF(t *testing.T) {
	store := filepath.Join(t.TempDir(), "prices.csv")
	out := runShell(t, store, "9") // input ends without exit
	if !strings.Contains(out, "Invalid option.") {
		t.Errorf("session output should reject option 9, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "Goodbye.\n") {
		t.Errorf("session should end gracefully at the end of input, got:\n%s", out)
	}
}

func TestShell_ReadErrorEndsSession(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "prices.csv")
	if err := os.WriteFile(store, []byte("product,category,price,url,timestamp\nbad\xfftext,c,1,u,t\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	sh := newShell(strings.NewReader("2\n6\n"), &out, prices.NewTracker(prices.NewStore(store)), renderer.Options{})
	if err := sh.run(context.Background()); err == nil {
		t.Errorf("run() on an unreadable store should fail, got:\n%s", out.String())
	}
}
