// Package output serializes extraction results and update reports.
package output

import "encoding/json"

// ToJSON serializes v to JSON, indented with two spaces when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
