package access

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrMalformedPayload distinguishes an unreadable scan from a readable one
// pointing at a record that does not exist.
var ErrMalformedPayload = errors.New("scan payload is not valid")

// ParseScanPayload decodes the JSON payload of a scanned exit ticket and
// returns the numeric record id it carries. The id may arrive as a number or
// as a string of digits; both coerce to the same id.
func ParseScanPayload(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMalformedPayload
	}

	var payload struct {
		ID json.Number `json:"id"`
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return 0, ErrMalformedPayload
	}

	id, err := payload.ID.Int64()
	if err != nil || id <= 0 {
		return 0, ErrMalformedPayload
	}
	return id, nil
}
