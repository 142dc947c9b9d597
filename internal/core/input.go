package core

import (
	"encoding/csv"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// HeaderIndex maps a normalized column name to its position in a row.
type HeaderIndex map[string]int

// WrapForStreaming strips a leading byte-order mark and replaces invalid
// UTF-8 with U+FFFD, decoding as the stream is read.
func WrapForStreaming(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// NewCSVReader returns a csv.Reader configured for hand-edited files:
// ragged rows are accepted, stray quotes are tolerated and leading spaces
// in a field are dropped.
func NewCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(WrapForStreaming(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return cr
}

// CleanHeader normalizes a header cell for lookup.
func CleanHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// CleanCell trims surrounding whitespace, the ="..." wrapper spreadsheets
// use to keep text literal, and a stray pair of quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 3 && strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		return strings.TrimSpace(s[2 : len(s)-1])
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// MakeHeaderIndex builds a HeaderIndex. The first occurrence of a
// repeated column wins; blank header cells are ignored.
func MakeHeaderIndex(headers []string) HeaderIndex {
	idx := make(HeaderIndex, len(headers))
	for i, h := range headers {
		key := CleanHeader(h)
		if key == "" {
			continue
		}
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

// Row converts a CSV record into an ImportRow. Columns absent from the
// header, or past the end of a short record, are absent from the result.
func (h HeaderIndex) Row(record []string) ImportRow {
	row := make(ImportRow, len(h))
	for name, pos := range h {
		if pos < len(record) {
			row[name] = CleanCell(record[pos])
		}
	}
	return row
}

// Missing returns the names in required that the header lacks.
func (h HeaderIndex) Missing(required ...string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
