package sheetrow

import (
	"strconv"
	"strings"
)

// Row is one spreadsheet record keyed by its (trimmed) header names.
// Headers keep sheet order so column resolution is deterministic.
type Row struct {
	headers []string
	values  map[string]string
}

// New builds a row from a header line and the matching record.
// Missing trailing cells read as empty strings.
func New(headers []string, record []string) Row {
	row := Row{
		headers: headers,
		values:  make(map[string]string, len(headers)),
	}
	for i, h := range headers {
		if i < len(record) {
			row.values[h] = record[i]
		} else {
			row.values[h] = ""
		}
	}
	return row
}

// FromMap is a convenience for tests and fixtures; headers follow the given order.
func FromMap(headers []string, values map[string]string) Row {
	record := make([]string, len(headers))
	for i, h := range headers {
		record[i] = values[h]
	}
	return New(headers, record)
}

// NormalizeHeaders trims header cells, names blank ones column_<n> and
// suffixes repeats with _1, _2, ...
func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = "column_" + strconv.Itoa(i+1)
		}
		if n, ok := seen[h]; ok {
			seen[h] = n + 1
			h = h + "_" + strconv.Itoa(n+1)
		} else {
			seen[h] = 0
		}
		out[i] = h
	}
	return out
}

// Headers returns the header names in sheet order.
func (r Row) Headers() []string {
	return r.headers
}

// Len reports the number of columns.
func (r Row) Len() int {
	return len(r.headers)
}

// Get returns the value stored under the exact header name.
func (r Row) Get(header string) string {
	return r.values[header]
}

// Value resolves a loosely named column. The target and each header are
// compared after lowercasing and dropping everything but [a-z0-9]; the first
// header that equals, contains or is contained by the target wins.
func (r Row) Value(target string) string {
	key, ok := r.Resolve(target)
	if !ok {
		return ""
	}
	return r.values[key]
}

// Resolve returns the header name Value would read for target.
func (r Row) Resolve(target string) (string, bool) {
	want := CleanKey(target)
	if want == "" {
		return "", false
	}
	for _, h := range r.headers {
		have := CleanKey(h)
		if have == "" {
			continue
		}
		if have == want || strings.Contains(have, want) || strings.Contains(want, have) {
			return h, true
		}
	}
	return "", false
}

// ValueContains is the one-way form of Value used by the warehouse layout: a
// header matches only when its cleaned form contains the cleaned target, so a
// short "Location" header never answers for location_code.
func (r Row) ValueContains(target string) string {
	want := CleanKey(target)
	if want == "" {
		return ""
	}
	for _, h := range r.headers {
		if strings.Contains(CleanKey(h), want) {
			return r.values[h]
		}
	}
	return ""
}

// First returns the first non-empty Value among targets.
func (r Row) First(targets ...string) string {
	for _, t := range targets {
		if v := r.Value(t); v != "" {
			return v
		}
	}
	return ""
}

// Map copies the row into a plain map, e.g. for JSON debug output.
func (r Row) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// CleanKey lowercases s and keeps only ASCII letters and digits.
func CleanKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range strings.ToLower(s) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// NormID trims and upper-cases identifiers (GRN ids, vehicle numbers, location codes).
func NormID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
