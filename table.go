// Package kaksviz turns tables of pairwise Ka/Ks (dN/dS) comparisons
// into a normalized record set and a gene-by-species-pair matrix ready
// for plotting.
package kaksviz

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Table is a delimited text table: trimmed column names plus raw rows.
// Built once by ReadTable and read-only afterwards.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadTableFile reads and parses a delimited table from a file.
func ReadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadTable(data)
}

// ReadTable parses a delimited table from raw bytes. Input is decoded as
// UTF-8, falling back to Latin-1 when the bytes are not valid UTF-8. The
// delimiter is detected from the header line.
func ReadTable(data []byte) (*Table, error) {
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}
		data = decoded
	}
	text := strings.TrimPrefix(string(data), "\uFEFF")

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = detectDelimiter(text)
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse input table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse input table: empty input")
	}

	t := &Table{Rows: records[1:]}
	for _, name := range records[0] {
		t.Columns = append(t.Columns, strings.TrimSpace(name))
	}
	return t, nil
}

// detectDelimiter picks the candidate occurring most often in the header
// line; comma wins ties.
func detectDelimiter(text string) rune {
	header := text
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	best, n := ',', strings.Count(header, ",")
	for _, c := range []rune{'\t', ';', '|'} {
		if k := strings.Count(header, string(c)); k > n {
			best, n = c, k
		}
	}
	return best
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a named column exists.
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// Cell returns the raw value at (row, column index); out-of-range
// column indices yield "".
func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
