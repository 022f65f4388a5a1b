// Package csvparse turns comma-separated text into header-keyed records.
//
// The scanner is deliberately tolerant: it never fails. Unterminated quotes
// consume the rest of the input, blank lines are skipped and short rows are
// padded with empty values.
package csvparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingZeroCode = regexp.MustCompile(`^0\d+$`)
	plainNumber     = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)
)

// Value is a single coerced cell. A cell is either text or a number.
type Value struct {
	Text     string
	Number   float64
	IsNumber bool
}

// Text returns a text Value.
func Text(s string) Value { return Value{Text: s} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{Number: f, IsNumber: true} }

// String renders the value the way it would appear in the source file.
func (v Value) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// IsEmpty reports whether the cell held nothing.
func (v Value) IsEmpty() bool {
	return !v.IsNumber && v.Text == ""
}

// Record is one data row keyed by header name.
type Record map[string]Value

// Get returns the value for key, or an empty Value when the column is absent.
func (r Record) Get(key string) Value {
	return r[key]
}

// Coerce applies the cell typing rules:
//   - empty stays empty text
//   - leading-zero digit strings ("011100103") stay text so product codes survive
//   - plain optionally-signed decimals become numbers
//   - everything else is text
func Coerce(raw string) Value {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return Text("")
	case leadingZeroCode.MatchString(s):
		return Text(s)
	case plainNumber.MatchString(s):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Text(s)
		}
		return Number(f)
	default:
		return Text(s)
	}
}

// Parse reads text into records. The first non-blank row is the header.
// Extra fields beyond the header are dropped; missing trailing fields are empty.
func Parse(text string) []Record {
	rows := ParseRows(text)
	if len(rows) == 0 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = Coerce(row[i])
			} else {
				rec[h] = Text("")
			}
		}
		records = append(records, rec)
	}
	return records
}

// ParseRows splits text into rows of raw, untrimmed fields. Rows whose fields
// are all empty or whitespace are discarded. Line endings may be \n, \r\n or \r.
func ParseRows(text string) [][]string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if !isBlankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
				continue
			}
			field.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		case '\n':
			endRow()
		default:
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

func isBlankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
