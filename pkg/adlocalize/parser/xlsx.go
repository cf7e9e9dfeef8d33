package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// xlsxRows serves the rows of the first sheet of a workbook. Leading rows
// with no data are skipped so the header is the first non-empty row.
type xlsxRows struct {
	rows [][]string
	pos  int
}

func newXLSXRows(r io.Reader) (*xlsxRows, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &xlsxRows{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	start := 0
	for start < len(rows) && !hasData(rows[start]) {
		start++
	}
	return &xlsxRows{rows: rows[start:]}, nil
}

func (x *xlsxRows) Next() ([]string, error) {
	if x.pos >= len(x.rows) {
		return nil, io.EOF
	}
	row := x.rows[x.pos]
	x.pos++
	return row, nil
}

func hasData(row []string) bool {
	for _, v := range row {
		if v != "" {
			return true
		}
	}
	return false
}
