package index

import (
	"encoding/json"
	"sort"

	"github.com/benchlab/llr/internal/hash"
)

// Row is one index record: a flat map of column name to string value.
//
// List-valued fields (tags, bench_args) hold a compact JSON array string;
// use EncodeList and DecodeList to convert.
type Row map[string]string

// Key returns the identity-key digest of the row: an xxHash64 over the
// ordered KeyColumns values with length-prefixed field boundaries.
//
// Missing key columns contribute the empty string, matching the comparison
// of rows read from files with older schemas.
func (r Row) Key() uint64 {
	digest := hash.NewDigest()
	for _, col := range KeyColumns {
		digest.WriteField(r[col])
	}

	return digest.Sum64()
}

// project returns the row's values in schema order: exactly one value per
// column, the empty string for columns the row lacks. Row fields absent from
// the schema do not appear in the output.
func (r Row) project(columns []string) []string {
	record := make([]string, len(columns))
	for i, col := range columns {
		record[i] = r[col]
	}

	return record
}

// extraColumns returns the row's columns that are not in schema, sorted for
// deterministic header order when a new file adopts them.
func (r Row) extraColumns(schema []string) []string {
	known := make(map[string]struct{}, len(schema))
	for _, col := range schema {
		known[col] = struct{}{}
	}

	var extras []string
	for col := range r {
		if _, ok := known[col]; !ok {
			extras = append(extras, col)
		}
	}
	sort.Strings(extras)

	return extras
}

// EncodeList serializes a list-valued field (tags, bench_args) as a compact
// JSON array string. A nil or empty list encodes as "[]".
func EncodeList(values []string) string {
	if values == nil {
		values = []string{}
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		// Marshalling []string cannot fail.
		panic(err)
	}

	return string(encoded)
}

// DecodeList parses a list-valued field back into its elements.
//
// An empty cell yields nil. A cell that is not a JSON array is treated as a
// single bare element, so hand-edited index files keep working.
func DecodeList(value string) []string {
	if value == "" {
		return nil
	}

	var values []string
	if err := json.Unmarshal([]byte(value), &values); err == nil {
		return values
	}

	return []string{value}
}
