// Package parser reads tabular localization files into datasets.
//
// A file has one header row. The column titled "key" holds the translation
// keys, every other titled column is a locale.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

// KeyColumn is the header title of the key column.
const KeyColumn = "key"

// Format identifies a tabular input format.
type Format string

const (
	// FormatCSV is comma separated values, UTF-8.
	FormatCSV Format = "csv"
	// FormatXLSX is an Office Open XML workbook; the first sheet is read.
	FormatXLSX Format = "xlsx"
)

// ErrNoKeyColumn indicates the header row has no key column.
var ErrNoKeyColumn = errors.New("no key column found in header")

// ErrInvalidLocale indicates a locale header that cannot name an output
// file, such as one containing a path separator.
var ErrInvalidLocale = errors.New("invalid locale header")

// ErrUnknownFormat indicates the file extension is not a supported format.
var ErrUnknownFormat = errors.New("unknown tabular format")

// DetectFormat returns the format matching the extension of name.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ExtractFile reads the file at path into a dataset.
// The format is detected from the file extension.
func ExtractFile(path string) (*models.Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Extract(path, f, format)
}

// Extract reads tabular content in format from r into a dataset named name.
func Extract(name string, r io.Reader, format Format) (*models.Dataset, error) {
	var rows rowReader
	var err error
	switch format {
	case FormatCSV:
		rows, err = newCSVRows(r)
	case FormatXLSX:
		rows, err = newXLSXRows(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return buildDataset(name, rows)
}

// rowReader yields rows in file order and io.EOF after the last one.
type rowReader interface {
	Next() ([]string, error)
}

// header describes the column layout found in the header row.
type header struct {
	keyIdx  int
	locales []string
	// columns maps a locale to the column holding its values.
	columns map[string]int
}

func parseHeader(cells []string) (*header, error) {
	h := &header{keyIdx: -1, columns: make(map[string]int)}
	for i, cell := range cells {
		title := strings.TrimSpace(cell)
		if strings.EqualFold(title, KeyColumn) {
			if h.keyIdx < 0 {
				h.keyIdx = i
			}
			continue
		}
		if title == "" {
			continue
		}
		if strings.ContainsAny(title, `/\`) || strings.Contains(title, "..") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, title)
		}
		if _, seen := h.columns[title]; !seen {
			h.locales = append(h.locales, title)
		}
		// A repeated locale title keeps its position; the last column wins.
		h.columns[title] = i
	}
	if h.keyIdx < 0 {
		return nil, ErrNoKeyColumn
	}
	return h, nil
}

func buildDataset(name string, rows rowReader) (*models.Dataset, error) {
	first, err := rows.Next()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoKeyColumn
	}
	if err != nil {
		return nil, err
	}
	h, err := parseHeader(first)
	if err != nil {
		return nil, err
	}

	b := models.NewBuilder(name)
	for _, locale := range h.locales {
		b.AddLocale(locale)
	}

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		key := strings.TrimSpace(cell(row, h.keyIdx))
		if key == "" {
			continue
		}
		for _, locale := range h.locales {
			b.Set(key, locale, cell(row, h.columns[locale]))
		}
	}

	return b.Build(), nil
}

// cell returns row[i], or "" when the row is shorter than the header.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
