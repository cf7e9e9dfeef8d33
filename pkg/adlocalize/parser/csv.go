package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvRows struct {
	r *csv.Reader
}

func newCSVRows(r io.Reader) (*csvRows, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	// Spreadsheet exports drop trailing empty cells on some rows.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &csvRows{r: cr}, nil
}

func (c *csvRows) Next() ([]string, error) {
	return c.r.Read()
}
