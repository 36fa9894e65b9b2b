package renderer

import (
	"strings"

	"github.com/etnz/prices"
)

// RecordsView is the data passed to the records templates.
type RecordsView struct {
	Title    string
	Category string
	Empty    string // message shown when there is no row
	Rows     []RecordRow
}

// RecordRow is a record with every cell already formatted and escaped.
type RecordRow struct {
	Number    int
	Product   string
	Category  string
	Price     string
	URL       string
	Timestamp string
}

func newRecords(title, category, empty string, records []prices.Record, opts Options) *RecordsView {
	v := &RecordsView{
		Title:    title,
		Category: escape(category),
		Empty:    empty,
	}
	for i, r := range records {
		v.Rows = append(v.Rows, RecordRow{
			Number:    i + 1,
			Product:   escape(r.Product),
			Category:  escape(r.Category),
			Price:     escape(r.Price.Display(opts.Currency)),
			URL:       escape(r.URL),
			Timestamp: escape(r.Timestamp),
		})
	}
	return v
}

var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"\r\n", " ",
	"\n", " ",
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
)

// escape makes free text safe to print inside a markdown table cell.
func escape(s string) string {
	return cellEscaper.Replace(s)
}
