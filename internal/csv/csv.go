// Package csv implements the CSV dialect used by stow archives.
//
// The dialect is RFC 4180 with a few pinned choices: rows are terminated by
// CRLF, a field is quoted only when it contains a comma, a double quote, or
// a line break, and embedded quotes are escaped by doubling. Encode and
// Decode are inverses for any field content, including multi-line values.
//
// encoding/csv is deliberately not used here: its reader rejects rows with
// inconsistent field counts and its writer quotes more aggressively than the
// archive format produced by earlier releases, which would break byte-level
// compatibility with archives already in the wild.
package csv

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the result of decoding a CSV text: the trimmed header row and
// one string map per data row, keyed by header.
type Document struct {
	Headers []string
	Rows    []map[string]string
}

// Encode renders rows as CSV text. Headers controls both column order and
// which keys are emitted; keys absent from a row serialize as empty fields.
//
// Values may be any JSON-serializable type. Strings, numbers, and booleans
// use their natural text form, nil becomes the empty string, and anything
// else (maps, slices, structs) is rendered as its JSON text before quoting
// rules are applied.
func Encode(rows []map[string]any, headers []string) string {
	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeField(h))
	}
	for _, row := range rows {
		b.WriteString("\r\n")
		for i, h := range headers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(row[h]))
		}
	}
	return b.String()
}

// Decode parses CSV text into a Document.
//
// The first row is consumed as the header row, with each column name
// whitespace-trimmed. Rows that are empty or whose every field is empty are
// dropped, which guards against trailing blank lines. Fields beyond the
// header width are discarded; missing trailing fields decode as "".
func Decode(text string) Document {
	records := scan(text)

	var headers []string
	if len(records) > 0 {
		headers = records[0]
		for i, h := range headers {
			headers[i] = strings.TrimSpace(h)
		}
		records = records[1:]
	}

	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		if allEmpty(rec) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return Document{Headers: headers, Rows: rows}
}

// scan splits text into raw records using a character-level scanner with an
// in-quotes flag. Line endings are normalized first so CRLF and bare CR both
// terminate rows the same way LF does.
func scan(text string) [][]string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var records [][]string
	i := 0
	for i < len(s) {
		var record []string
		var field strings.Builder
		inQuotes := false

		for ; i < len(s); i++ {
			ch := s[i]
			if inQuotes {
				if ch == '"' {
					if i+1 < len(s) && s[i+1] == '"' {
						// Doubled quote is a literal quote.
						field.WriteByte('"')
						i++
					} else {
						inQuotes = false
					}
				} else {
					field.WriteByte(ch)
				}
				continue
			}
			switch ch {
			case '"':
				inQuotes = true
			case ',':
				record = append(record, field.String())
				field.Reset()
			case '\n':
				record = append(record, field.String())
				records = append(records, record)
				field.Reset()
			default:
				field.WriteByte(ch)
			}
			if ch == '\n' {
				break
			}
		}

		if i >= len(s) {
			// Input ended without a trailing newline; flush the open record.
			record = append(record, field.String())
			records = append(records, record)
		}
		i++
	}
	return records
}

// escapeField converts a value to its CSV field text.
func escapeField(val any) string {
	var v string
	switch t := val.(type) {
	case nil:
		return ""
	case string:
		v = t
	case bool:
		v = strconv.FormatBool(t)
	case int:
		v = strconv.Itoa(t)
	case int64:
		v = strconv.FormatInt(t, 10)
	case float64:
		v = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			v = fmt.Sprintf("%v", t)
		} else {
			v = string(data)
		}
	}

	if strings.ContainsAny(v, ",\"\n\r") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// allEmpty reports whether every field in the record is the empty string.
func allEmpty(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}
