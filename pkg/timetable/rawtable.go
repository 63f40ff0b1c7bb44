package timetable

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/campigo/campigo/pkg/util"
)

// ParseTables strips every <table> on a fetched page down to a RawTable of
// normalized cell texts. Malformed or empty tables just produce fewer tables;
// the page source restructures often enough that failing hard here would take
// the whole importer down with it
func ParseTables(reader io.Reader) ([]shuttle.RawTable, error) {
	document, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, err
	}

	var tables []shuttle.RawTable

	document.Find("table").Each(func(_ int, tableSelection *goquery.Selection) {
		var rows [][]string

		tableSelection.Find("tr").Each(func(_ int, rowSelection *goquery.Selection) {
			var cells []string

			rowSelection.Find("th, td").Each(func(_ int, cellSelection *goquery.Selection) {
				cells = append(cells, util.NormalizeWhitespace(cellSelection.Text()))
			})

			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})

		if len(rows) > 0 {
			tables = append(tables, shuttle.RawTable{Rows: rows})
		}
	})

	return tables, nil
}
